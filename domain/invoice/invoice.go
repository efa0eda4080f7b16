package invoice

import (
	"strings"
	"time"

	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	EntityName      = "invoice"
	DefaultPageSize = 50
)

// Status codes
const (
	StatusDraft     = "D"
	StatusSent      = "S"
	StatusPaid      = "P"
	StatusOverdue   = "O"
	StatusCancelled = "C"
)

// Invoice header. ID is a surrogate key, ContractCode with SeqNo is the
// natural key.
type Invoice struct {
	ID            int64           `json:"id"`
	ContractCode  string          `json:"contract_code"`
	SeqNo         int64           `json:"seq_no"`
	CustomerCode  string          `json:"customer_code"`
	ContractNo    int64           `json:"contract_no"`
	TypeCode      string          `json:"type_code"`
	StatusCode    string          `json:"status_code"`
	CreateDate    *time.Time      `json:"create_date,omitempty"`
	StartDate     *time.Time      `json:"start_date,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	Value         decimal.Decimal `json:"value"`
	Vat           decimal.Decimal `json:"vat"`
	Discount      float64         `json:"discount"`
	OrderRef      string          `json:"order_ref"`
	BookingNo     *int64          `json:"booking_no,omitempty"`
	ProcessedDate *time.Time      `json:"processed_date,omitempty"`
	ProcessedBy   string          `json:"processed_by,omitempty"`
}

// Total is value plus VAT
func (i Invoice) Total() decimal.Decimal { return i.Value.Add(i.Vat) }

// IsOverdue is true when the end date has passed and the invoice is unpaid
func (i Invoice) IsOverdue(now time.Time) bool {
	return i.EndDate != nil && i.EndDate.Before(now) && i.StatusCode != StatusPaid
}

// Key returns the surrogate key
func Key(i Invoice) int64 { return i.ID }

// Validate checks required fields before a write
func Validate(i Invoice) error {
	if strings.TrimSpace(i.ContractCode) == "" {
		return shared.NewValidationError(EntityName, "contract_code", "contract code is required")
	}
	if strings.TrimSpace(i.CustomerCode) == "" {
		return shared.NewValidationError(EntityName, "customer_code", "customer code is required")
	}
	if i.SeqNo < 0 {
		return shared.NewValidationError(EntityName, "seq_no", "sequence number must not be negative")
	}
	if i.StatusCode != "" {
		if _, ok := statusLabels[i.StatusCode]; !ok {
			return shared.NewValidationError(EntityName, "status_code", "unknown invoice status "+i.StatusCode)
		}
	}
	return nil
}

var statusLabels = map[string]string{
	StatusDraft:     "Draft",
	StatusSent:      "Sent",
	StatusPaid:      "Paid",
	StatusOverdue:   "Overdue",
	StatusCancelled: "Cancelled",
}

// StatusLabel maps a status code to its display name, unknown codes pass through
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// StatusCode accepts a code or a label ("paid", "PAID", "P"). Anything else
// is taken as an upper-cased code, so an unknown status matches nothing
// rather than everything. Only a blank value is no constraint.
func StatusCode(raw string) (string, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return "", false
	}
	for code, label := range statusLabels {
		if strings.ToUpper(label) == raw {
			return code, true
		}
	}
	return raw, true
}

// Fields
var (
	FieldID            = query.IntField("id", "invoice_id", func(i Invoice) int64 { return i.ID })
	FieldContractCode  = query.TextField("contractCode", "contract_code", func(i Invoice) string { return i.ContractCode })
	FieldSeqNo         = query.IntField("seqNo", "invoice_seqno", func(i Invoice) int64 { return i.SeqNo })
	FieldCustomerCode  = query.TextField("customerCode", "cust_code", func(i Invoice) string { return i.CustomerCode })
	FieldOrderRef      = query.TextField("order", "invoice_order", func(i Invoice) string { return i.OrderRef })
	FieldStatus        = query.TextField("status", "invoicestatus_code", func(i Invoice) string { return i.StatusCode })
	FieldType          = query.TextField("type", "invoicetype_code", func(i Invoice) string { return i.TypeCode })
	FieldCreateDate    = query.TimeField("createDate", "invoice_createdate", func(i Invoice) *time.Time { return i.CreateDate })
	FieldEndDate       = query.TimeField("endDate", "invoice_enddate", func(i Invoice) *time.Time { return i.EndDate })
	FieldProcessedDate = query.TimeField("processedDate", "processed_date", func(i Invoice) *time.Time { return i.ProcessedDate })
	FieldValue         = query.DecimalField("value", "invoice_value", func(i Invoice) decimal.Decimal { return i.Value })
)

// Metrics
var (
	MetricValue = query.Metric[Invoice]{Name: "value", Expr: "invoice_value", Value: func(i Invoice) decimal.Decimal { return i.Value }}
	MetricVat   = query.Metric[Invoice]{Name: "vat", Expr: "invoice_vat", Value: func(i Invoice) decimal.Decimal { return i.Vat }}
	MetricTotal = query.Metric[Invoice]{Name: "total", Expr: "invoice_value + invoice_vat", Value: Invoice.Total}
)

// NewConfig builds the invoice search table. now feeds the dateRange filter.
func NewConfig(now func() time.Time) query.EntityConfig[Invoice] {
	return query.EntityConfig[Invoice]{
		Name:            EntityName,
		Key:             FieldID,
		DefaultSort:     FieldProcessedDate,
		DefaultDesc:     true,
		DefaultPageSize: DefaultPageSize,
		Searchable:      []query.Field[Invoice]{FieldID, FieldContractCode, FieldCustomerCode, FieldOrderRef},
		Sortable: []query.Field[Invoice]{
			FieldContractCode, FieldSeqNo, FieldCustomerCode, FieldStatus,
			FieldCreateDate, FieldEndDate, FieldProcessedDate, FieldValue,
		},
		Filters: []query.Filter[Invoice]{
			query.MappedFilter("status", FieldStatus, StatusCode),
			query.EqualFilter("customerCode", FieldCustomerCode),
			query.EqualFilter("type", FieldType),
			query.FromFilter("from", FieldCreateDate),
			query.ToFilter("to", FieldCreateDate),
			query.DateRangeFilter("dateRange", FieldCreateDate, now),
		},
		GroupBy: []query.Field[Invoice]{FieldStatus, FieldType},
		Sums:    []query.Metric[Invoice]{MetricValue, MetricVat, MetricTotal},
	}
}

// Config uses the wall clock
var Config = NewConfig(time.Now)

// OverduePredicate selects unpaid invoices whose end date is before now
func OverduePredicate(now time.Time) shared.Specification[Invoice] {
	before := now.Add(-time.Nanosecond)
	return shared.And(
		query.Between(FieldEndDate, nil, &before),
		shared.Not(query.Equals(FieldStatus, StatusPaid)),
	)
}

// OverdueCutoff is how long an unpaid invoice may age before it counts as overdue
const OverdueCutoff = 30 * 24 * time.Hour

// OverdueCountPredicate selects invoices marked overdue, plus unpaid
// invoices created more than 30 days before the start of today. It backs the
// overdue indicator; OverduePredicate backs the overdue listing.
func OverdueCountPredicate(now time.Time) shared.Specification[Invoice] {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	before := today.Add(-OverdueCutoff).Add(-time.Nanosecond)
	return shared.Or(
		query.Equals(FieldStatus, StatusOverdue),
		shared.And(
			shared.Not(query.Equals(FieldStatus, StatusPaid)),
			query.Between(FieldCreateDate, nil, &before),
		),
	)
}

// OutstandingPredicate selects every invoice that is not paid
func OutstandingPredicate() shared.Specification[Invoice] {
	return shared.Not(query.Equals(FieldStatus, StatusPaid))
}
