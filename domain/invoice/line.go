package invoice

import (
	"strings"
	"time"

	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	LineEntityName      = "invoice line"
	LineDefaultPageSize = 50
)

// Line is one charge on an invoice. Refund holds the off-hire discount.
type Line struct {
	ID             int64           `json:"id"`
	InvoiceID      int64           `json:"invoice_id"`
	ContractCode   string          `json:"contract_code"`
	SeqNo          int64           `json:"seq_no"`
	ContractLineNo int64           `json:"contract_line_no"`
	LineNo         int64           `json:"line_no"`
	StockNo        int64           `json:"stock_no"`
	StockName      string          `json:"stock_name"`
	StockTypeCode  string          `json:"stock_type_code"`
	Quantity       int64           `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Charge         decimal.Decimal `json:"charge"`
	DiscountFlag   shared.Flag     `json:"discount_flag"`
	VatPercent     float64         `json:"vat_percent"`
	DeliveryDate   *time.Time      `json:"delivery_date,omitempty"`
	DeliveryNo     string          `json:"delivery_no"`
	Refund         decimal.Decimal `json:"refund"`
	ProcessedDate  *time.Time      `json:"processed_date,omitempty"`
}

// LineKey returns the surrogate key
func LineKey(l Line) int64 { return l.ID }

// ValidateLine checks required fields before a write
func ValidateLine(l Line) error {
	if l.InvoiceID <= 0 {
		return shared.NewValidationError(LineEntityName, "invoice_id", "invoice id is required")
	}
	if strings.TrimSpace(l.ContractCode) == "" {
		return shared.NewValidationError(LineEntityName, "contract_code", "contract code is required")
	}
	return ValidateRefund(l, l.Refund)
}

// ValidateRefund rejects negative refunds and refunds above the charge
func ValidateRefund(l Line, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewValidationError(LineEntityName, "refund", "refund must not be negative")
	}
	if amount.GreaterThan(l.Charge) {
		return shared.NewValidationError(LineEntityName, "refund", "refund must not exceed the line charge")
	}
	return nil
}

// Line fields
var (
	LineFieldID           = query.IntField("id", "invoice_line_id", func(l Line) int64 { return l.ID })
	LineFieldInvoiceID    = query.IntField("invoiceId", "invoice_id", func(l Line) int64 { return l.InvoiceID })
	LineFieldLineNo       = query.IntField("lineNo", "invoiceline_lineno", func(l Line) int64 { return l.LineNo })
	LineFieldStockNo      = query.IntField("stockNo", "stock_no", func(l Line) int64 { return l.StockNo })
	LineFieldStockName    = query.TextField("stockName", "stock_name", func(l Line) string { return l.StockName })
	LineFieldStockType    = query.TextField("stockType", "stocktype_code", func(l Line) string { return l.StockTypeCode })
	LineFieldContractCode = query.TextField("contractCode", "contract_code", func(l Line) string { return l.ContractCode })
	LineFieldDeliveryNo   = query.TextField("deliveryNo", "invoiceline_deliveryno", func(l Line) string { return l.DeliveryNo })
	LineFieldDelivery     = query.TimeField("deliveryDate", "invoiceline_deliverydate", func(l Line) *time.Time { return l.DeliveryDate })
)

// Line metrics
var (
	LineMetricCharge = query.Metric[Line]{Name: "charge", Expr: "invoiceline_charge", Value: func(l Line) decimal.Decimal { return l.Charge }}
	LineMetricRefund = query.Metric[Line]{Name: "refund", Expr: "invoiceline_offhirediscount", Value: func(l Line) decimal.Decimal { return l.Refund }}
)

// LineConfig is the invoice line search table
var LineConfig = query.EntityConfig[Line]{
	Name:            LineEntityName,
	Key:             LineFieldID,
	DefaultSort:     LineFieldLineNo,
	DefaultPageSize: LineDefaultPageSize,
	Searchable:      []query.Field[Line]{LineFieldStockName, LineFieldContractCode, LineFieldDeliveryNo},
	Sortable:        []query.Field[Line]{LineFieldLineNo, LineFieldInvoiceID, LineFieldStockNo, LineFieldStockName, LineFieldDelivery},
	Filters: []query.Filter[Line]{
		query.EqualFilter("invoiceId", LineFieldInvoiceID),
		query.EqualFilter("stockType", LineFieldStockType),
		query.EqualFilter("stockNo", LineFieldStockNo),
	},
	GroupBy: []query.Field[Line]{LineFieldStockType},
	Sums:    []query.Metric[Line]{LineMetricCharge, LineMetricRefund},
}
