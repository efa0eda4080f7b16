package booking

import (
	"strings"
	"time"

	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	EntityName      = "booking"
	DefaultPageSize = 20
)

// Booking types double as the booking status
const (
	TypeDraft     = "D"
	TypeConfirmed = "C"
	TypePaid      = "P"
	TypeCancelled = "X"
)

// Booking is a training or hire booking placed by a customer
type Booking struct {
	No           int64           `json:"no"`
	TypeCode     string          `json:"type_code"`
	WebsiteNo    int64           `json:"website_no"`
	CreateDate   *time.Time      `json:"create_date,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	CustomerCode string          `json:"customer_code"`
	OrderRef     string          `json:"order_ref"`
	Contact      string          `json:"contact"`
	Telephone    string          `json:"telephone"`
	Email        string          `json:"email"`
	Charge       decimal.Decimal `json:"charge"`
	Vat          decimal.Decimal `json:"vat"`
	SourceCode   string          `json:"source_code"`
	Notes        string          `json:"notes"`
	Captured     decimal.Decimal `json:"captured"`
	Refunded     decimal.Decimal `json:"refunded"`
}

// Total is charge plus VAT
func (b Booking) Total() decimal.Decimal { return b.Charge.Add(b.Vat) }

// Key returns the booking number
func Key(b Booking) int64 { return b.No }

// Validate checks required fields before a write
func Validate(b Booking) error {
	if b.No < 0 {
		return shared.NewValidationError(EntityName, "no", "booking number must not be negative")
	}
	if strings.TrimSpace(b.CustomerCode) == "" {
		return shared.NewValidationError(EntityName, "customer_code", "customer code is required")
	}
	if b.TypeCode != "" {
		if _, ok := statusLabels[b.TypeCode]; !ok {
			return shared.NewValidationError(EntityName, "type_code", "unknown booking type "+b.TypeCode)
		}
	}
	return nil
}

var statusLabels = map[string]string{
	TypeDraft:     "Draft",
	TypeConfirmed: "Confirmed",
	TypePaid:      "Paid",
	TypeCancelled: "Cancelled",
}

// StatusLabel maps a booking type code to its display name
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// Fields
var (
	FieldNo           = query.IntField("no", "tmsbooking_no", func(b Booking) int64 { return b.No })
	FieldType         = query.TextField("status", "tmsbookingtype_code", func(b Booking) string { return b.TypeCode })
	FieldCustomerCode = query.TextField("customerCode", "cust_code", func(b Booking) string { return b.CustomerCode })
	FieldContact      = query.TextField("contact", "tmsbooking_contact", func(b Booking) string { return b.Contact })
	FieldEmail        = query.TextField("email", "tmsbooking_email", func(b Booking) string { return b.Email })
	FieldOrderRef     = query.TextField("order", "tmsbooking_order", func(b Booking) string { return b.OrderRef })
	FieldSource       = query.TextField("source", "tmsbookingsource_code", func(b Booking) string { return b.SourceCode })
	FieldCreateDate   = query.TimeField("createDate", "tmsbooking_createdate", func(b Booking) *time.Time { return b.CreateDate })
)

// Metrics
var (
	MetricTotal    = query.Metric[Booking]{Name: "total", Expr: "tmsbooking_charge + tmsbooking_vat", Value: Booking.Total}
	MetricCaptured = query.Metric[Booking]{Name: "captured", Expr: "tmsbooking_captured", Value: func(b Booking) decimal.Decimal { return b.Captured }}
	MetricRefunded = query.Metric[Booking]{Name: "refunded", Expr: "tmsbooking_refunded", Value: func(b Booking) decimal.Decimal { return b.Refunded }}
)

// Config is the booking search table, newest first
var Config = query.EntityConfig[Booking]{
	Name:            EntityName,
	Key:             FieldNo,
	DefaultSort:     FieldCreateDate,
	DefaultDesc:     true,
	DefaultPageSize: DefaultPageSize,
	Searchable:      []query.Field[Booking]{FieldNo, FieldCustomerCode, FieldContact, FieldEmail, FieldOrderRef},
	Sortable:        []query.Field[Booking]{FieldCreateDate, FieldCustomerCode, FieldType, FieldContact},
	Filters: []query.Filter[Booking]{
		query.EqualFilter("customerCode", FieldCustomerCode),
		query.EqualFilter("status", FieldType),
		query.EqualFilter("source", FieldSource),
		query.FromFilter("from", FieldCreateDate),
		query.ToFilter("to", FieldCreateDate),
	},
	GroupBy: []query.Field[Booking]{FieldType, FieldSource},
	Sums:    []query.Metric[Booking]{MetricTotal, MetricCaptured, MetricRefunded},
}
