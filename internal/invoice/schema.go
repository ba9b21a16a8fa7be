package invoice

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the InvoiceData wire shape. Unknown keys are
// tolerated; type mismatches (a string where a number is expected,
// line_items not an array) are validation failures.
func BuildInvoiceJSONSchema() map[string]any {
	lineItem := map[string]any{
		"type": []string{"object"},
		"properties": map[string]any{
			"description":             strProp(),
			"description_confidence":  confProp(),
			"quantity":                numProp(),
			"quantity_confidence":     confProp(),
			"unit_price":              numProp(),
			"unit_price_confidence":   confProp(),
			"total_price":             numProp(),
			"total_price_confidence":  confProp(),
			"product_code":            strProp(),
			"product_code_confidence": confProp(),
			"tax_rate":                numProp(),
			"tax_rate_confidence":     confProp(),
			"category":                strProp(),
			"category_confidence":     confProp(),
		},
	}

	props := map[string]any{
		"invoice_number":                    strProp(),
		"invoice_number_confidence":         confProp(),
		"invoice_date":                      strProp(),
		"invoice_date_confidence":           confProp(),
		"due_date":                          strProp(),
		"due_date_confidence":               confProp(),
		"purchase_order_number":             strProp(),
		"purchase_order_number_confidence":  confProp(),
		"currency":                          strProp(),
		"currency_confidence":               confProp(),
		"subtotal":                          numProp(),
		"subtotal_confidence":               confProp(),
		"tax":                               numProp(),
		"tax_confidence":                    confProp(),
		"shipping":                          numProp(),
		"shipping_confidence":               confProp(),
		"total":                             numProp(),
		"total_confidence":                  confProp(),
		"amount_due":                        numProp(),
		"amount_due_confidence":             confProp(),
		"vendor":                            partySchema("tax_id"),
		"customer":                          partySchema("account_number"),
		"line_items":                        map[string]any{"type": []string{"array", "null"}, "items": lineItem},
		"additional_information":            strProp(),
		"additional_information_confidence": confProp(),
		"flags": map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"confidence_warning":   boolProp(),
				"multi_page_invoice":   boolProp(),
				"discrepancy_detected": boolProp(),
			},
		},
		"low_confidence_fields": map[string]any{
			"type":  []string{"array", "null"},
			"items": map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

func partySchema(idKey string) map[string]any {
	props := map[string]any{
		"name":               strProp(),
		"name_confidence":    confProp(),
		"address":            strProp(),
		"address_confidence": confProp(),
		"phone":              strProp(),
		"phone_confidence":   confProp(),
		"email":              strProp(),
		"email_confidence":   confProp(),
	}
	props[idKey] = strProp()
	props[idKey+"_confidence"] = confProp()
	return map[string]any{
		"type":       []string{"object", "null"},
		"properties": props,
	}
}

func strProp() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

func numProp() map[string]any {
	return map[string]any{"type": []string{"number", "null"}}
}

func boolProp() map[string]any {
	return map[string]any{"type": []string{"boolean", "null"}}
}

func confProp() map[string]any {
	return map[string]any{"type": []string{"number", "null"}, "minimum": 0.0, "maximum": 1.0}
}
