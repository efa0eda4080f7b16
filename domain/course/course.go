package course

import (
	"strings"

	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	EntityName      = "course"
	DefaultPageSize = 20
)

// Course is a training course in the catalogue. No is the surrogate key,
// Code is unique.
type Course struct {
	No               int64           `json:"no"`
	TypeCode         string          `json:"type_code"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	WebCode          string          `json:"web_code"`
	Status           string          `json:"status"`
	Published        shared.Flag     `json:"published"`
	Duration         decimal.Decimal `json:"duration"`
	MinDelegates     int64           `json:"min_delegates"`
	MaxDelegates     int64           `json:"max_delegates"`
	SupplierCost     decimal.Decimal `json:"supplier_cost"`
	SundryCost       decimal.Decimal `json:"sundry_cost"`
	SupplierCode     string          `json:"supplier_code"`
	InternallyHosted shared.Flag     `json:"internally_hosted"`
	Website          string          `json:"website"`
	CategoryNo       int64           `json:"category_no"`
	JoiningURL       string          `json:"joining_url"`
}

// Type is a course type lookup row
type Type struct {
	Code    string      `json:"code"`
	Name    string      `json:"name"`
	Status  string      `json:"status"`
	IsEvent shared.Flag `json:"is_event"`
}

// Category is a course category lookup row
type Category struct {
	No     int64  `json:"no"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Key returns the course number
func Key(c Course) int64 { return c.No }

// Validate checks required fields before a write
func Validate(c Course) error {
	if c.No < 0 {
		return shared.NewValidationError(EntityName, "no", "course number must not be negative")
	}
	if strings.TrimSpace(c.Code) == "" {
		return shared.NewValidationError(EntityName, "code", "course code is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewValidationError(EntityName, "name", "course name is required")
	}
	if c.MaxDelegates > 0 && c.MinDelegates > c.MaxDelegates {
		return shared.NewValidationError(EntityName, "min_delegates", "minimum delegates exceeds maximum")
	}
	return nil
}

var statusLabels = map[string]string{
	"A": "Active",
	"I": "Inactive",
	"D": "Deleted",
	"P": "Pending",
}

var typeLabels = map[string]string{
	"C": "Classroom",
	"O": "Online",
	"B": "Blended",
	"W": "Workshop",
}

// StatusLabel maps a course status code to its display name
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// TypeLabel maps a course type code to its display name
func TypeLabel(code string) string {
	if label, ok := typeLabels[code]; ok {
		return label
	}
	return code
}

// Fields
var (
	FieldNo       = query.IntField("courseNo", "tmscourse_no", func(c Course) int64 { return c.No })
	FieldCode     = query.TextField("code", "tmscourse_code", func(c Course) string { return c.Code })
	FieldName     = query.TextField("name", "tmscourse_name", func(c Course) string { return c.Name })
	FieldWebCode  = query.TextField("webCode", "tmscourse_webcode", func(c Course) string { return c.WebCode })
	FieldStatus   = query.TextField("status", "tmscourse_status", func(c Course) string { return c.Status })
	FieldType     = query.TextField("type", "tmscoursetype_code", func(c Course) string { return c.TypeCode })
	FieldPublish  = query.TextField("published", "tmscourse_publish", func(c Course) string { return c.Published.Encode() })
	FieldCategory = query.IntField("category", "tmscoursecategory_no", func(c Course) int64 { return c.CategoryNo })
	FieldSupplier = query.TextField("supplier", "smsupplier_code", func(c Course) string { return c.SupplierCode })
)

// MetricSupplierCost sums supplier cost
var MetricSupplierCost = query.Metric[Course]{Name: "supplierCost", Expr: "tmscourse_suppliercost", Value: func(c Course) decimal.Decimal { return c.SupplierCost }}

// Config is the course search table, highest course number first
var Config = query.EntityConfig[Course]{
	Name:            EntityName,
	Key:             FieldNo,
	DefaultSort:     FieldNo,
	DefaultDesc:     true,
	DefaultPageSize: DefaultPageSize,
	Searchable:      []query.Field[Course]{FieldName, FieldCode, FieldWebCode},
	Sortable:        []query.Field[Course]{FieldCode, FieldName, FieldStatus, FieldType},
	Filters: []query.Filter[Course]{
		query.EqualFilter("status", FieldStatus),
		query.EqualFilter("type", FieldType),
		query.FlagFilter("published", FieldPublish),
		query.EqualFilter("category", FieldCategory),
	},
	GroupBy: []query.Field[Course]{FieldStatus, FieldType, FieldCategory},
	Sums:    []query.Metric[Course]{MetricSupplierCost},
}
