package store

import (
	"sort"
	"sync"

	"github.com/docuparse/invoice-parser/internal/common"
	"github.com/docuparse/invoice-parser/internal/invoice"
)

// StoredInvoice pairs an invoice identifier with its current record.
type StoredInvoice struct {
	ID     string
	Record *invoice.InvoiceData
}

// InvoiceStore maps invoice identifiers to their current (possibly corrected)
// record and keeps the append-only correction log. Records are treated as
// immutable once put; corrections replace the whole entry.
type InvoiceStore interface {
	Put(id string, rec *invoice.InvoiceData)
	Get(id string) (*invoice.InvoiceData, error)
	List() []StoredInvoice
	AppendCorrection(c invoice.InvoiceCorrection)
	Corrections() []invoice.InvoiceCorrection
}

// MemoryStore is the process-lifetime implementation: a map plus an
// append-only slice behind one RWMutex. Reset on restart by design.
type MemoryStore struct {
	mu          sync.RWMutex
	invoices    map[string]*invoice.InvoiceData
	corrections []invoice.InvoiceCorrection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{invoices: make(map[string]*invoice.InvoiceData)}
}

// Put stores a record under id, overwriting any previous record.
func (s *MemoryStore) Put(id string, rec *invoice.InvoiceData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[id] = rec
}

// Get returns the current record for id, or ErrNotFound.
func (s *MemoryStore) Get(id string) (*invoice.InvoiceData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.invoices[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return rec, nil
}

// List returns a snapshot of all stored invoices, ordered by id for
// deterministic exports.
func (s *MemoryStore) List() []StoredInvoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StoredInvoice, 0, len(s.invoices))
	for id, rec := range s.invoices {
		out = append(out, StoredInvoice{ID: id, Record: rec})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AppendCorrection appends to the correction log. The log is never mutated or
// reordered afterwards.
func (s *MemoryStore) AppendCorrection(c invoice.InvoiceCorrection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corrections = append(s.corrections, c)
}

// Corrections returns a copy of the correction log in append order.
func (s *MemoryStore) Corrections() []invoice.InvoiceCorrection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]invoice.InvoiceCorrection, len(s.corrections))
	copy(out, s.corrections)
	return out
}
