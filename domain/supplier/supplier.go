package supplier

import (
	"strconv"
	"strings"

	"erp/domain/query"
	"erp/domain/shared"
)

const (
	EntityName      = "supplier"
	DefaultPageSize = 50
)

// Supplier is a training body that delivers or certifies courses
type Supplier struct {
	No              int64  `json:"no"`
	Name            string `json:"name"`
	Website         string `json:"website"`
	Status          string `json:"status"`
	EditCounter     int64  `json:"edit_counter"`
	DelegateDisplay string `json:"delegate_display"`
	IntegrationNo   int64  `json:"integration_no"`
}

// Key returns the supplier number
func Key(s Supplier) int64 { return s.No }

// activeStatuses are the status codes treated as active. A blank status
// predates the column and counts as active.
var activeStatuses = []any{"A", "1", ""}

// IsActive reports whether the supplier can be offered on new courses
func (s Supplier) IsActive() bool {
	switch strings.TrimSpace(s.Status) {
	case "A", "1", "":
		return true
	}
	return false
}

// StatusLabel is Active or Inactive
func (s Supplier) StatusLabel() string {
	if s.IsActive() {
		return "Active"
	}
	return "Inactive"
}

// Validate checks required fields before a write
func Validate(s Supplier) error {
	if s.No < 0 {
		return shared.NewValidationError(EntityName, "no", "supplier number must not be negative")
	}
	if strings.TrimSpace(s.Name) == "" {
		return shared.NewValidationError(EntityName, "name", "supplier name is required")
	}
	if len(s.Name) > 50 {
		return shared.NewValidationError(EntityName, "name", "supplier name exceeds 50 characters")
	}
	if len(s.Status) > 1 {
		return shared.NewValidationError(EntityName, "status", "status is a single character")
	}
	return nil
}

// Fields
var (
	FieldNo      = query.IntField("supplierNo", "tmsbody_no", func(s Supplier) int64 { return s.No })
	FieldName    = query.TextField("name", "tmsbody_name", func(s Supplier) string { return s.Name })
	FieldWebsite = query.TextField("website", "tmsbody_website", func(s Supplier) string { return s.Website })
	FieldStatus  = query.TextField("status", "tmsbody_status", func(s Supplier) string { return s.Status })
)

// ActivePredicate selects active suppliers
func ActivePredicate() shared.Specification[Supplier] {
	return query.In(FieldStatus, activeStatuses...)
}

// activeFilter accepts true/false, Y/N or 1/0
func activeFilter() query.Filter[Supplier] {
	return query.Filter[Supplier]{Name: "active", Build: func(raw string) (shared.Specification[Supplier], bool) {
		flag := shared.DecodeFlag(raw)
		if !flag.Known() {
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return nil, false
			}
			flag = shared.FlagOf(b)
		}
		if flag.IsTrue() {
			return ActivePredicate(), true
		}
		return shared.Not(ActivePredicate()), true
	}}
}

// Config is the supplier search table, ordered by name
var Config = query.EntityConfig[Supplier]{
	Name:            EntityName,
	Key:             FieldNo,
	DefaultSort:     FieldName,
	DefaultPageSize: DefaultPageSize,
	Searchable:      []query.Field[Supplier]{FieldNo, FieldName, FieldWebsite},
	Sortable:        []query.Field[Supplier]{FieldName, FieldStatus},
	Filters: []query.Filter[Supplier]{
		query.EqualFilter("status", FieldStatus),
		activeFilter(),
	},
	GroupBy: []query.Field[Supplier]{FieldStatus},
}
