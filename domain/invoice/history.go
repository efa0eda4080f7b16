package invoice

import (
	"strings"
	"time"

	"erp/domain/query"
	"erp/domain/shared"
)

const (
	HistoryEntityName      = "invoice history"
	HistoryDefaultPageSize = 20

	// HistoryTypeNote is a user note, HistoryTypeSystem is written on invoice changes
	HistoryTypeNote   = "note"
	HistoryTypeSystem = "system"
)

// History is a note or audit entry attached to an invoice
type History struct {
	ID        int64     `json:"id"`
	InvoiceID int64     `json:"invoice_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryKey returns the surrogate key
func HistoryKey(h History) int64 { return h.ID }

// ValidateHistory checks required fields before a write
func ValidateHistory(h History) error {
	if h.InvoiceID <= 0 {
		return shared.NewValidationError(HistoryEntityName, "invoice_id", "invoice id is required")
	}
	if strings.TrimSpace(h.Title) == "" {
		return shared.NewValidationError(HistoryEntityName, "title", "title is required")
	}
	if len(h.Title) > 200 {
		return shared.NewValidationError(HistoryEntityName, "title", "title must be at most 200 characters")
	}
	return nil
}

// History fields
var (
	HistoryFieldID        = query.IntField("id", "history_id", func(h History) int64 { return h.ID })
	HistoryFieldInvoiceID = query.IntField("invoiceId", "invoice_id", func(h History) int64 { return h.InvoiceID })
	HistoryFieldType      = query.TextField("type", "history_type", func(h History) string { return h.Type })
	HistoryFieldTitle     = query.TextField("title", "history_title", func(h History) string { return h.Title })
	HistoryFieldContent   = query.TextField("content", "history_content", func(h History) string { return h.Content })
	HistoryFieldCreatedAt = query.TimeField("createdAt", "created_at", func(h History) *time.Time { return &h.CreatedAt })
)

// HistoryConfig lists newest entries first
var HistoryConfig = query.EntityConfig[History]{
	Name:            HistoryEntityName,
	Key:             HistoryFieldID,
	DefaultSort:     HistoryFieldCreatedAt,
	DefaultDesc:     true,
	DefaultPageSize: HistoryDefaultPageSize,
	Searchable:      []query.Field[History]{HistoryFieldTitle, HistoryFieldContent},
	Sortable:        []query.Field[History]{HistoryFieldCreatedAt, HistoryFieldType},
	Filters: []query.Filter[History]{
		query.EqualFilter("invoiceId", HistoryFieldInvoiceID),
		query.EqualFilter("type", HistoryFieldType),
	},
	GroupBy: []query.Field[History]{HistoryFieldType},
}
