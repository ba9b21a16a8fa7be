package invoice

// InvoiceData is the canonical extracted structure. Every value field is
// optional and paired with a confidence score in [0,1]; the score is present
// if and only if the value is non-null. Wire shape (snake_case, confidence
// siblings) is fixed by the extraction prompt contract.
type InvoiceData struct {
	InvoiceNumber                    *string      `json:"invoice_number"`
	InvoiceNumberConfidence          *float64     `json:"invoice_number_confidence,omitempty"`
	InvoiceDate                      *string      `json:"invoice_date"`
	InvoiceDateConfidence            *float64     `json:"invoice_date_confidence,omitempty"`
	DueDate                          *string      `json:"due_date"`
	DueDateConfidence                *float64     `json:"due_date_confidence,omitempty"`
	PurchaseOrderNumber              *string      `json:"purchase_order_number"`
	PurchaseOrderNumberConfidence    *float64     `json:"purchase_order_number_confidence,omitempty"`
	Currency                         *string      `json:"currency"`
	CurrencyConfidence               *float64     `json:"currency_confidence,omitempty"`
	Subtotal                         *float64     `json:"subtotal"`
	SubtotalConfidence               *float64     `json:"subtotal_confidence,omitempty"`
	Tax                              *float64     `json:"tax"`
	TaxConfidence                    *float64     `json:"tax_confidence,omitempty"`
	Shipping                         *float64     `json:"shipping"`
	ShippingConfidence               *float64     `json:"shipping_confidence,omitempty"`
	Total                            *float64     `json:"total"`
	TotalConfidence                  *float64     `json:"total_confidence,omitempty"`
	AmountDue                        *float64     `json:"amount_due"`
	AmountDueConfidence              *float64     `json:"amount_due_confidence,omitempty"`
	Vendor                           VendorInfo   `json:"vendor"`
	Customer                         CustomerInfo `json:"customer"`
	LineItems                        []LineItem   `json:"line_items"`
	AdditionalInformation            *string      `json:"additional_information"`
	AdditionalInformationConfidence  *float64     `json:"additional_information_confidence,omitempty"`
	Flags                            Flags        `json:"flags"`
	LowConfidenceFields              []string     `json:"low_confidence_fields"`
}

// VendorInfo identifies the issuing party.
type VendorInfo struct {
	Name              *string  `json:"name"`
	NameConfidence    *float64 `json:"name_confidence,omitempty"`
	Address           *string  `json:"address"`
	AddressConfidence *float64 `json:"address_confidence,omitempty"`
	Phone             *string  `json:"phone"`
	PhoneConfidence   *float64 `json:"phone_confidence,omitempty"`
	Email             *string  `json:"email"`
	EmailConfidence   *float64 `json:"email_confidence,omitempty"`
	TaxID             *string  `json:"tax_id"`
	TaxIDConfidence   *float64 `json:"tax_id_confidence,omitempty"`
}

// CustomerInfo identifies the billed party.
type CustomerInfo struct {
	Name                    *string  `json:"name"`
	NameConfidence          *float64 `json:"name_confidence,omitempty"`
	Address                 *string  `json:"address"`
	AddressConfidence       *float64 `json:"address_confidence,omitempty"`
	Phone                   *string  `json:"phone"`
	PhoneConfidence         *float64 `json:"phone_confidence,omitempty"`
	Email                   *string  `json:"email"`
	EmailConfidence         *float64 `json:"email_confidence,omitempty"`
	AccountNumber           *string  `json:"account_number"`
	AccountNumberConfidence *float64 `json:"account_number_confidence,omitempty"`
}

// LineItem is a single invoice line, structured or inferred from free text.
type LineItem struct {
	Description           *string  `json:"description"`
	DescriptionConfidence *float64 `json:"description_confidence,omitempty"`
	Quantity              *float64 `json:"quantity"`
	QuantityConfidence    *float64 `json:"quantity_confidence,omitempty"`
	UnitPrice             *float64 `json:"unit_price"`
	UnitPriceConfidence   *float64 `json:"unit_price_confidence,omitempty"`
	TotalPrice            *float64 `json:"total_price"`
	TotalPriceConfidence  *float64 `json:"total_price_confidence,omitempty"`
	ProductCode           *string  `json:"product_code"`
	ProductCodeConfidence *float64 `json:"product_code_confidence,omitempty"`
	TaxRate               *float64 `json:"tax_rate"`
	TaxRateConfidence     *float64 `json:"tax_rate_confidence,omitempty"`
	Category              *string  `json:"category"`
	CategoryConfidence    *float64 `json:"category_confidence,omitempty"`
}

// Flags carries reliability signals produced during extraction.
type Flags struct {
	ConfidenceWarning   bool `json:"confidence_warning"`
	MultiPageInvoice    bool `json:"multi_page_invoice"`
	DiscrepancyDetected bool `json:"discrepancy_detected"`
}

// InvoiceCorrection is an immutable record of one human correction. It is
// appended to the correction log and never mutated afterwards.
type InvoiceCorrection struct {
	InvoiceID           string      `json:"invoice_id"`
	OriginalData        InvoiceData `json:"original_data"`
	CorrectedData       InvoiceData `json:"corrected_data"`
	CorrectionTimestamp string      `json:"correction_timestamp"`
	UserID              *string     `json:"user_id"`
	CorrectionNotes     *string     `json:"correction_notes"`
}

// UploadResponse is the body returned by the upload endpoint.
type UploadResponse struct {
	Success   bool         `json:"success"`
	Data      *InvoiceData `json:"data,omitempty"`
	Error     *string      `json:"error,omitempty"`
	InvoiceID *string      `json:"invoice_id,omitempty"`
	FilePath  *string      `json:"file_path,omitempty"`
}
