package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docuparse/invoice-parser/internal/common"
)

// LowConfidenceThreshold marks scored fields that need human verification.
const LowConfidenceThreshold = 0.7

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(BuildInvoiceJSONSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("invoice.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("invoice.json")
	})
	return schema, schemaErr
}

// Coerce validates raw JSON against the invoice schema and unmarshals it into
// InvoiceData, then normalizes the confidence invariant: absent values lose
// their scores, present values without a score default to 1.0, and
// low_confidence_fields is recomputed for every scored field below the
// threshold. Type mismatches fail with ErrSchemaValidation.
func Coerce(raw []byte) (*InvoiceData, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, common.WrapError(err, "compile invoice schema")
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSchemaValidation, err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSchemaValidation, err)
	}
	var d InvoiceData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSchemaValidation, err)
	}
	d.Normalize()
	return &d, nil
}

// Normalize enforces the value/confidence pairing invariant and rebuilds
// low_confidence_fields. Model-provided entries that are not rediscovered are
// kept (the model may flag fields for reasons beyond the numeric score).
func (d *InvoiceData) Normalize() {
	var low []string
	score := func(present bool, conf **float64, path string) {
		if !present {
			*conf = nil
			return
		}
		if *conf == nil {
			c := 1.0
			*conf = &c
			return
		}
		if **conf < LowConfidenceThreshold {
			low = append(low, path)
		}
	}

	score(d.InvoiceNumber != nil, &d.InvoiceNumberConfidence, "invoice_number")
	score(d.InvoiceDate != nil, &d.InvoiceDateConfidence, "invoice_date")
	score(d.DueDate != nil, &d.DueDateConfidence, "due_date")
	score(d.PurchaseOrderNumber != nil, &d.PurchaseOrderNumberConfidence, "purchase_order_number")
	score(d.Currency != nil, &d.CurrencyConfidence, "currency")
	score(d.Subtotal != nil, &d.SubtotalConfidence, "subtotal")
	score(d.Tax != nil, &d.TaxConfidence, "tax")
	score(d.Shipping != nil, &d.ShippingConfidence, "shipping")
	score(d.Total != nil, &d.TotalConfidence, "total")
	score(d.AmountDue != nil, &d.AmountDueConfidence, "amount_due")

	v := &d.Vendor
	score(v.Name != nil, &v.NameConfidence, "vendor.name")
	score(v.Address != nil, &v.AddressConfidence, "vendor.address")
	score(v.Phone != nil, &v.PhoneConfidence, "vendor.phone")
	score(v.Email != nil, &v.EmailConfidence, "vendor.email")
	score(v.TaxID != nil, &v.TaxIDConfidence, "vendor.tax_id")

	c := &d.Customer
	score(c.Name != nil, &c.NameConfidence, "customer.name")
	score(c.Address != nil, &c.AddressConfidence, "customer.address")
	score(c.Phone != nil, &c.PhoneConfidence, "customer.phone")
	score(c.Email != nil, &c.EmailConfidence, "customer.email")
	score(c.AccountNumber != nil, &c.AccountNumberConfidence, "customer.account_number")

	for i := range d.LineItems {
		it := &d.LineItems[i]
		prefix := fmt.Sprintf("line_items.%d.", i)
		score(it.Description != nil, &it.DescriptionConfidence, prefix+"description")
		score(it.Quantity != nil, &it.QuantityConfidence, prefix+"quantity")
		score(it.UnitPrice != nil, &it.UnitPriceConfidence, prefix+"unit_price")
		score(it.TotalPrice != nil, &it.TotalPriceConfidence, prefix+"total_price")
		score(it.ProductCode != nil, &it.ProductCodeConfidence, prefix+"product_code")
		score(it.TaxRate != nil, &it.TaxRateConfidence, prefix+"tax_rate")
		score(it.Category != nil, &it.CategoryConfidence, prefix+"category")
	}

	score(d.AdditionalInformation != nil, &d.AdditionalInformationConfidence, "additional_information")

	seen := make(map[string]struct{}, len(low))
	for _, p := range low {
		seen[p] = struct{}{}
	}
	for _, p := range d.LowConfidenceFields {
		if _, ok := seen[p]; !ok {
			low = append(low, p)
			seen[p] = struct{}{}
		}
	}
	if low == nil {
		low = []string{}
	}
	d.LowConfidenceFields = low
	if len(low) > 0 {
		d.Flags.ConfidenceWarning = true
	}

	if d.LineItems == nil {
		d.LineItems = []LineItem{}
	}
}
