package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuparse/invoice-parser/internal/content"
	"github.com/docuparse/invoice-parser/internal/corrections"
	"github.com/docuparse/invoice-parser/internal/export"
	"github.com/docuparse/invoice-parser/internal/extract"
	"github.com/docuparse/invoice-parser/internal/invoice"
	"github.com/docuparse/invoice-parser/internal/store"
)

// newTestServer wires the full stack in offline mode: no completer means
// every upload resolves to the built-in sample record.
func newTestServer(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	extractor := content.NewExtractor(content.Config{}, nil)
	pipeline := extract.NewService(nil, extractor, nil, st, extract.Config{MockFallback: true})
	recorder := corrections.NewRecorder(st, nil)
	exporter := export.NewService(st, nil)

	srv := New(nil, pipeline, st, recorder, exporter, t.TempDir(), false)
	return srv.Routes(), st
}

func multipartUpload(t *testing.T, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	w, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, false, resp["api_key_configured"])
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	r, st := newTestServer(t)

	body, ct := multipartUpload(t, "notes.txt", []byte("plain text"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp invoice.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, unsupportedTypeMsg, *resp.Error)

	// Nothing was stored for the rejected upload.
	assert.Empty(t, st.List())
}

func TestUploadMissingFile(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadOfflineModeRoundTrip(t *testing.T) {
	r, _ := newTestServer(t)

	body, ct := multipartUpload(t, "invoice.png", []byte("fake png bytes"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp invoice.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "INV-2025-0412", *resp.Data.InvoiceNumber)
	require.NotNil(t, resp.InvoiceID)
	require.NotNil(t, resp.FilePath)
	assert.True(t, strings.HasPrefix(*resp.FilePath, "/uploads/"))
	assert.True(t, strings.HasSuffix(*resp.FilePath, ".png"))

	// The returned id serves the same record.
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/invoice/"+*resp.InvoiceID, nil)
	r.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)

	var got invoice.InvoiceData
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &got))
	assert.Equal(t, "INV-2025-0412", *got.InvoiceNumber)
}

func TestGetInvoiceNotFound(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoice/nope", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestCorrectionFlow(t *testing.T) {
	r, st := newTestServer(t)

	rec, err := invoice.MockInvoice()
	require.NoError(t, err)
	st.Put("inv-1", rec)

	w := postForm(r, "/api/corrections", url.Values{
		"invoice_id":       {"inv-1"},
		"corrected_data":   {`{"invoice_number": "INV-FIXED"}`},
		"user_id":          {"user-1"},
		"correction_notes": {"typo in number"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The response is the full correction record.
	var corr invoice.InvoiceCorrection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &corr))
	assert.Equal(t, "inv-1", corr.InvoiceID)
	assert.Equal(t, "INV-2025-0412", *corr.OriginalData.InvoiceNumber)
	assert.Equal(t, "INV-FIXED", *corr.CorrectedData.InvoiceNumber)
	assert.NotEmpty(t, corr.CorrectionTimestamp)
	require.NotNil(t, corr.UserID)
	assert.Equal(t, "user-1", *corr.UserID)
	require.NotNil(t, corr.CorrectionNotes)
	assert.Equal(t, "typo in number", *corr.CorrectionNotes)

	got, err := st.Get("inv-1")
	require.NoError(t, err)
	assert.Equal(t, "INV-FIXED", *got.InvoiceNumber)
	assert.Len(t, st.Corrections(), 1)
}

func TestCorrectionErrors(t *testing.T) {
	r, st := newTestServer(t)

	rec, err := invoice.MockInvoice()
	require.NoError(t, err)
	st.Put("inv-1", rec)

	tests := []struct {
		name string
		form url.Values
		code int
	}{
		{
			name: "missing fields",
			form: url.Values{"invoice_id": {"inv-1"}},
			code: http.StatusBadRequest,
		},
		{
			name: "unknown invoice",
			form: url.Values{"invoice_id": {"nope"}, "corrected_data": {`{}`}},
			code: http.StatusNotFound,
		},
		{
			name: "malformed corrected data",
			form: url.Values{"invoice_id": {"inv-1"}, "corrected_data": {`{{{`}},
			code: http.StatusBadRequest,
		},
		{
			name: "schema violation",
			form: url.Values{"invoice_id": {"inv-1"}, "corrected_data": {`{"invoice_number": 42}`}},
			code: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(r, "/api/corrections", tt.form)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestExportEndpoint(t *testing.T) {
	r, st := newTestServer(t)

	rec, err := invoice.MockInvoice()
	require.NoError(t, err)
	st.Put("inv-1", rec)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices/export", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxMIME, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	// XLSX files are zip archives.
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}
