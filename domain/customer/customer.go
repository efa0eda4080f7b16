package customer

import (
	"strings"

	"erp/domain/query"
	"erp/domain/shared"
)

const (
	// EntityName is used in errors and logs
	EntityName = "customer"

	// DefaultPageSize of customer listings
	DefaultPageSize = 50

	// MaxCodeLength of the natural key
	MaxCodeLength = 10
)

// Customer is a trading account identified by its code.
type Customer struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Address1    string      `json:"address1,omitempty"`
	Address2    string      `json:"address2,omitempty"`
	Address3    string      `json:"address3,omitempty"`
	Town        string      `json:"town,omitempty"`
	County      string      `json:"county,omitempty"`
	Postcode    string      `json:"postcode,omitempty"`
	Telephone   string      `json:"telephone,omitempty"`
	Fax         string      `json:"fax,omitempty"`
	Email       string      `json:"email,omitempty"`
	VatNumber   string      `json:"vat_number,omitempty"`
	ContactFlag shared.Flag `json:"contact_flag"`
	VatFlag     shared.Flag `json:"vat_flag"`
	NationNo    *int64      `json:"nation_no,omitempty"`
	Discount    *float64    `json:"discount,omitempty"`
	TypeCode    string      `json:"type_code,omitempty"`
	StatusCode  string      `json:"status_code,omitempty"`
}

// Key returns the natural key
func Key(c Customer) string { return c.Code }

// Validate checks required fields before a write
func Validate(c Customer) error {
	code := strings.TrimSpace(c.Code)
	if code == "" {
		return shared.NewValidationError(EntityName, "code", "customer code is required")
	}
	if len(code) > MaxCodeLength {
		return shared.NewValidationError(EntityName, "code", "customer code must be at most 10 characters")
	}
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewValidationError(EntityName, "name", "customer name is required")
	}
	return nil
}

// Fields
var (
	FieldCode   = query.TextField("code", "cust_code", func(c Customer) string { return c.Code })
	FieldName   = query.TextField("name", "cust_name", func(c Customer) string { return c.Name })
	FieldTown   = query.TextField("town", "cust_town", func(c Customer) string { return c.Town })
	FieldType   = query.TextField("type", "custtype_code", func(c Customer) string { return c.TypeCode })
	FieldStatus = query.TextField("status", "custstatus_code", func(c Customer) string { return c.StatusCode })
)

// Config is the customer search table. Customers are the only entity with
// the letter bucket filter.
var Config = query.EntityConfig[Customer]{
	Name:            EntityName,
	Key:             FieldCode,
	DefaultSort:     FieldCode,
	DefaultPageSize: DefaultPageSize,
	Searchable:      []query.Field[Customer]{FieldCode, FieldName},
	Sortable:        []query.Field[Customer]{FieldCode, FieldName, FieldTown, FieldType, FieldStatus},
	Filters: []query.Filter[Customer]{
		query.EqualFilter("type", FieldType),
		query.EqualFilter("status", FieldStatus),
		query.LetterFilter("letter", FieldCode, FieldName),
	},
	GroupBy: []query.Field[Customer]{FieldStatus, FieldType},
}
