package corrections

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuparse/invoice-parser/internal/common"
	"github.com/docuparse/invoice-parser/internal/invoice"
	"github.com/docuparse/invoice-parser/internal/store"
)

// Recorder validates user-submitted corrections and applies them. Unlike the
// extraction path, this path is correctness-biased: malformed corrected data
// is rejected outright rather than silently degraded, since the log is the
// ground truth for future model improvement.
type Recorder struct {
	store  store.InvoiceStore
	logger *slog.Logger
	now    func() time.Time
}

func NewRecorder(st store.InvoiceStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: st, logger: logger, now: time.Now}
}

// Record validates correctedJSON, appends an immutable correction entry
// capturing the current stored record, and overwrites the store entry with
// the corrected record. Fails with ErrNotFound when invoiceID is unknown and
// ErrInvalidInput when correctedJSON is malformed or fails schema validation.
func (r *Recorder) Record(ctx context.Context, invoiceID string, correctedJSON []byte, userID, notes string) (invoice.InvoiceCorrection, error) {
	start := time.Now()

	current, err := r.store.Get(invoiceID)
	if err != nil {
		return invoice.InvoiceCorrection{}, err
	}

	if !json.Valid(correctedJSON) {
		return invoice.InvoiceCorrection{}, fmt.Errorf("%w: corrected_data is not valid JSON", common.ErrInvalidInput)
	}
	corrected, err := invoice.Coerce(correctedJSON)
	if err != nil {
		return invoice.InvoiceCorrection{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	correction := invoice.InvoiceCorrection{
		InvoiceID:           invoiceID,
		OriginalData:        *current,
		CorrectedData:       *corrected,
		CorrectionTimestamp: r.now().Format(time.RFC3339),
	}
	if userID != "" {
		correction.UserID = &userID
	}
	if notes != "" {
		correction.CorrectionNotes = &notes
	}

	// Append first, then overwrite: the log entry must capture the record
	// as it was before this correction took effect.
	r.store.AppendCorrection(correction)
	r.store.Put(invoiceID, corrected)

	r.logger.Info("correction.recorded",
		"invoice_id", invoiceID,
		"has_user_id", userID != "",
		"has_notes", notes != "",
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return correction, nil
}
