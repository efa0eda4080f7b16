package booking

import (
	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

const (
	LineEntityName      = "booking line"
	LineDefaultPageSize = 20
)

// Line types
const (
	LineTypeHire   = "H"
	LineTypeSale   = "S"
	LineTypeDamage = "D"
	LineTypeLabour = "L"
)

// LineKey identifies a booking line: booking number plus line number
type LineKey struct {
	BookingNo int64 `json:"booking_no"`
	LineNo    int64 `json:"line_no"`
}

// Line is one item of a booking
type Line struct {
	BookingNo      int64           `json:"booking_no"`
	LineNo         int64           `json:"line_no"`
	ContractNo     int64           `json:"contract_no"`
	StockNo        int64           `json:"stock_no"`
	Quantity       int64           `json:"quantity"`
	Type           string          `json:"type"`
	BasicPrice     decimal.Decimal `json:"basic_price"`
	Price          decimal.Decimal `json:"price"`
	PriceEditFlag  shared.Flag     `json:"price_edit_flag"`
	VatPercent     decimal.Decimal `json:"vat_percent"`
	DeliveryType   string          `json:"delivery_type"`
	RequestedQty   int64           `json:"requested_qty"`
	CancelledQty   int64           `json:"cancelled_qty"`
	ContractLineNo int64           `json:"contract_line_no"`
}

// Value is price times quantity
func (l Line) Value() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// KeyOfLine returns the composite key
func KeyOfLine(l Line) LineKey { return LineKey{BookingNo: l.BookingNo, LineNo: l.LineNo} }

// ValidateLine checks the composite key and quantities
func ValidateLine(l Line) error {
	if l.BookingNo <= 0 {
		return shared.NewValidationError(LineEntityName, "booking_no", "booking number is required")
	}
	if l.LineNo <= 0 {
		return shared.NewValidationError(LineEntityName, "line_no", "line number is required")
	}
	if l.Quantity < 0 {
		return shared.NewValidationError(LineEntityName, "quantity", "quantity must not be negative")
	}
	return nil
}

var lineTypeLabels = map[string]string{
	LineTypeHire:   "Hire",
	LineTypeSale:   "Sale",
	LineTypeDamage: "Damage",
	LineTypeLabour: "Labour",
}

// LineTypeLabel maps a line type code to its display name
func LineTypeLabel(code string) string {
	if label, ok := lineTypeLabels[code]; ok {
		return label
	}
	return code
}

// DeliveryTypeLabel maps a delivery code, anything unrecognised is TBD
func DeliveryTypeLabel(code string) string {
	switch code {
	case "D":
		return "Delivery"
	case "C":
		return "Collection"
	case "S":
		return "Self Service"
	default:
		return "TBD"
	}
}

// Line fields
var (
	LineFieldBookingNo    = query.IntField("bookingNo", "tmsbooking_no", func(l Line) int64 { return l.BookingNo })
	LineFieldLineNo       = query.IntField("lineNo", "tmsbookingline_no", func(l Line) int64 { return l.LineNo })
	LineFieldStockNo      = query.IntField("stockNo", "stock_no", func(l Line) int64 { return l.StockNo })
	LineFieldType         = query.TextField("type", "tmsbookingline_type", func(l Line) string { return l.Type })
	LineFieldDeliveryType = query.TextField("deliveryType", "tmsbookingline_deliverytype", func(l Line) string { return l.DeliveryType })
)

// LineMetricValue sums price times quantity
var LineMetricValue = query.Metric[Line]{Name: "value", Expr: "tmsbookingline_price * tmsbookingline_qty", Value: Line.Value}

// LineConfig is the booking line search table
var LineConfig = query.EntityConfig[Line]{
	Name:            LineEntityName,
	Key:             LineFieldBookingNo,
	KeyParts:        []query.Field[Line]{LineFieldLineNo},
	DefaultSort:     LineFieldBookingNo,
	DefaultPageSize: LineDefaultPageSize,
	Sortable:        []query.Field[Line]{LineFieldLineNo, LineFieldStockNo, LineFieldType},
	Filters: []query.Filter[Line]{
		query.EqualFilter("bookingNo", LineFieldBookingNo),
		query.EqualFilter("type", LineFieldType),
		query.EqualFilter("deliveryType", LineFieldDeliveryType),
		query.EqualFilter("stockNo", LineFieldStockNo),
	},
	GroupBy: []query.Field[Line]{LineFieldType, LineFieldDeliveryType},
	Sums:    []query.Metric[Line]{LineMetricValue},
}
