package stock

import (
	"strings"

	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	EntityName      = "stock"
	DefaultPageSize = 50
)

// Stock is an item of hire or sale stock
type Stock struct {
	No         int64           `json:"no"`
	DivisionNo int64           `json:"division_no"`
	DeptNo     int64           `json:"dept_no"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	ShortName  string          `json:"short_name"`
	LongName   string          `json:"long_name"`
	Status     string          `json:"status"`
	TypeCode   string          `json:"type_code"`
	Residual   decimal.Decimal `json:"residual"`
}

// Key returns the stock number
func Key(s Stock) int64 { return s.No }

// Validate checks required fields before a write
func Validate(s Stock) error {
	if s.No < 0 {
		return shared.NewValidationError(EntityName, "no", "stock number must not be negative")
	}
	if strings.TrimSpace(s.Code) == "" {
		return shared.NewValidationError(EntityName, "code", "stock code is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return shared.NewValidationError(EntityName, "name", "stock name is required")
	}
	if s.Residual.IsNegative() {
		return shared.NewValidationError(EntityName, "residual", "residual must not be negative")
	}
	return nil
}

// DisplayName prefers the long name, then the name, then the short name
func (s Stock) DisplayName() string {
	for _, n := range []string{s.LongName, s.Name, s.ShortName} {
		if strings.TrimSpace(n) != "" {
			return strings.TrimSpace(n)
		}
	}
	return ""
}

// Fields
var (
	FieldNo        = query.IntField("stockNo", "stock_no", func(s Stock) int64 { return s.No })
	FieldDivision  = query.IntField("division", "division_no", func(s Stock) int64 { return s.DivisionNo })
	FieldCode      = query.TextField("code", "stock_code", func(s Stock) string { return s.Code })
	FieldName      = query.TextField("name", "stock_name", func(s Stock) string { return s.Name })
	FieldShortName = query.TextField("shortName", "stock_shortname", func(s Stock) string { return s.ShortName })
	FieldLongName  = query.TextField("longName", "stock_longname", func(s Stock) string { return s.LongName })
	FieldStatus    = query.TextField("status", "stock_status", func(s Stock) string { return s.Status })
	FieldType      = query.TextField("type", "stocktype_code1", func(s Stock) string { return s.TypeCode })
)

// MetricResidual sums residual value
var MetricResidual = query.Metric[Stock]{Name: "residual", Expr: "stock_residual", Value: func(s Stock) decimal.Decimal { return s.Residual }}

// Config is the stock search table, ordered by stock number
var Config = query.EntityConfig[Stock]{
	Name:            EntityName,
	Key:             FieldNo,
	DefaultSort:     FieldNo,
	DefaultPageSize: DefaultPageSize,
	Searchable:      []query.Field[Stock]{FieldNo, FieldName, FieldShortName, FieldCode, FieldLongName},
	Sortable:        []query.Field[Stock]{FieldCode, FieldName, FieldDivision, FieldStatus},
	Filters: []query.Filter[Stock]{
		query.EqualFilter("division", FieldDivision),
		query.EqualFilter("status", FieldStatus),
		query.EqualFilter("type", FieldType),
	},
	GroupBy: []query.Field[Stock]{FieldStatus, FieldDivision, FieldType},
	Sums:    []query.Metric[Stock]{MetricResidual},
}
