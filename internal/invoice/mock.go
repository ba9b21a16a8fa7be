package invoice

import "github.com/docuparse/invoice-parser/internal/common"

// mockInvoiceJSON is the built-in sample record served in offline/demo mode
// and by the terminal fallback of the extraction ladder.
const mockInvoiceJSON = `{
  "invoice_number": "INV-2025-0412",
  "invoice_date": "2025-04-01",
  "due_date": "2025-05-01",
  "purchase_order_number": "PO-2025-0389",
  "currency": "USD",
  "subtotal": 1250.00,
  "tax": 100.00,
  "shipping": 25.00,
  "total": 1375.00,
  "amount_due": 1375.00,
  "vendor": {
    "name": "TechSupplies Inc.",
    "address": "123 Vendor St, San Francisco, CA 94107",
    "phone": "555-123-4567",
    "email": "billing@techsupplies.example",
    "tax_id": "12-3456789"
  },
  "customer": {
    "name": "Acme Corp",
    "address": "456 Customer Ave, San Francisco, CA 94108",
    "phone": "555-987-6543",
    "email": "accounts@acme.example",
    "account_number": "ACME-001"
  },
  "line_items": [
    {
      "description": "Premium Cloud Hosting",
      "quantity": 1.0,
      "unit_price": 750.00,
      "total_price": 750.00,
      "product_code": "CLOUD-001",
      "tax_rate": 0.08,
      "category": "software"
    },
    {
      "description": "Technical Support Hours",
      "quantity": 5.0,
      "unit_price": 100.00,
      "total_price": 500.00,
      "product_code": "SUPPORT-HR",
      "tax_rate": 0.0,
      "category": "services"
    }
  ],
  "additional_information": "Payment terms: Net 30\nPlease include invoice number with payment.\nBank details: Bank of America, Account: 1234567890, Routing: 987654321",
  "flags": {
    "confidence_warning": false,
    "multi_page_invoice": false,
    "discrepancy_detected": false
  }
}`

// MockInvoice returns a fresh copy of the built-in sample record, run through
// the same coercion path as real extractions so confidences are normalized.
// Failure here is the extraction pipeline's only terminal error.
func MockInvoice() (*InvoiceData, error) {
	rec, err := Coerce([]byte(mockInvoiceJSON))
	if err != nil {
		return nil, common.WrapError(err, "build sample invoice")
	}
	return rec, nil
}
