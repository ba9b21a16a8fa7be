package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/docuparse/invoice-parser/internal/invoice"
	"github.com/docuparse/invoice-parser/internal/store"
)

func TestExportInvoicesXLSX(t *testing.T) {
	st := store.NewMemoryStore()
	rec, err := invoice.MockInvoice()
	require.NoError(t, err)
	st.Put("inv-1", rec)

	svc := NewService(st, nil)
	data, err := svc.ExportInvoicesXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Only the named sheet; the default Sheet1 must not survive.
	assert.Equal(t, []string{"Invoices"}, f.GetSheetList())

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Invoice ID", rows[0][0])
	assert.Equal(t, "inv-1", rows[1][0])
	assert.Equal(t, "INV-2025-0412", rows[1][1])
	assert.Equal(t, "TechSupplies Inc.", rows[1][4])
}

func TestExportEmptyStore(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil)
	data, err := svc.ExportInvoicesXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
