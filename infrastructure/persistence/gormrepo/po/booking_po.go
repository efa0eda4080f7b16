package po

import (
	"time"

	"erp/domain/booking"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

type BookingPO struct {
	No           int64           `gorm:"column:tmsbooking_no;primaryKey;autoIncrement"`
	TypeCode     string          `gorm:"column:tmsbookingtype_code;size:1;index"`
	WebsiteNo    int64           `gorm:"column:website_no"`
	CreateDate   *time.Time      `gorm:"column:tmsbooking_createdate;index"`
	ExpiryDate   *time.Time      `gorm:"column:tmsbooking_expirydate"`
	CustomerCode string          `gorm:"column:cust_code;size:10;index"`
	OrderRef     string          `gorm:"column:tmsbooking_order;size:50"`
	Contact      string          `gorm:"column:tmsbooking_contact;size:100"`
	Telephone    string          `gorm:"column:tmsbooking_tel;size:30"`
	Email        string          `gorm:"column:tmsbooking_email;size:255"`
	Charge       decimal.Decimal `gorm:"column:tmsbooking_charge;type:decimal(14,2)"`
	Vat          decimal.Decimal `gorm:"column:tmsbooking_vat;type:decimal(14,2)"`
	SourceCode   string          `gorm:"column:tmsbookingsource_code;size:10"`
	Notes        string          `gorm:"column:tmsbooking_notes;type:text"`
	Captured     decimal.Decimal `gorm:"column:tmsbooking_captured;type:decimal(14,2)"`
	Refunded     decimal.Decimal `gorm:"column:tmsbooking_refunded;type:decimal(14,2)"`
}

func (BookingPO) TableName() string {
	return "tmsbooking"
}

func FromBookingDomain(b booking.Booking) *BookingPO {
	return &BookingPO{
		No:           b.No,
		TypeCode:     b.TypeCode,
		WebsiteNo:    b.WebsiteNo,
		CreateDate:   b.CreateDate,
		ExpiryDate:   b.ExpiryDate,
		CustomerCode: b.CustomerCode,
		OrderRef:     b.OrderRef,
		Contact:      b.Contact,
		Telephone:    b.Telephone,
		Email:        b.Email,
		Charge:       b.Charge,
		Vat:          b.Vat,
		SourceCode:   b.SourceCode,
		Notes:        b.Notes,
		Captured:     b.Captured,
		Refunded:     b.Refunded,
	}
}

func (po *BookingPO) ToDomain() booking.Booking {
	return booking.Booking{
		No:           po.No,
		TypeCode:     po.TypeCode,
		WebsiteNo:    po.WebsiteNo,
		CreateDate:   po.CreateDate,
		ExpiryDate:   po.ExpiryDate,
		CustomerCode: po.CustomerCode,
		OrderRef:     po.OrderRef,
		Contact:      po.Contact,
		Telephone:    po.Telephone,
		Email:        po.Email,
		Charge:       po.Charge,
		Vat:          po.Vat,
		SourceCode:   po.SourceCode,
		Notes:        po.Notes,
		Captured:     po.Captured,
		Refunded:     po.Refunded,
	}
}

type BookingLinePO struct {
	BookingNo      int64           `gorm:"column:tmsbooking_no;primaryKey;autoIncrement:false"`
	LineNo         int64           `gorm:"column:tmsbookingline_no;primaryKey;autoIncrement:false"`
	ContractNo     int64           `gorm:"column:contract_no"`
	StockNo        int64           `gorm:"column:stock_no;index"`
	Quantity       int64           `gorm:"column:tmsbookingline_qty"`
	Type           string          `gorm:"column:tmsbookingline_type;size:1"`
	BasicPrice     decimal.Decimal `gorm:"column:tmsbookingline_basicprice;type:decimal(14,2)"`
	Price          decimal.Decimal `gorm:"column:tmsbookingline_price;type:decimal(14,2)"`
	PriceEditFlag  string          `gorm:"column:tmsbookingline_priceedit;size:1"`
	VatPercent     decimal.Decimal `gorm:"column:tmsbookingline_vatpercent;type:decimal(5,2)"`
	DeliveryType   string          `gorm:"column:tmsbookingline_deliverytype;size:1"`
	RequestedQty   int64           `gorm:"column:tmsbookingline_requestedqty"`
	CancelledQty   int64           `gorm:"column:tmsbookingline_cancelledqty"`
	ContractLineNo int64           `gorm:"column:contractline_no"`
}

func (BookingLinePO) TableName() string {
	return "tmsbookingline"
}

func FromBookingLineDomain(l booking.Line) *BookingLinePO {
	return &BookingLinePO{
		BookingNo:      l.BookingNo,
		LineNo:         l.LineNo,
		ContractNo:     l.ContractNo,
		StockNo:        l.StockNo,
		Quantity:       l.Quantity,
		Type:           l.Type,
		BasicPrice:     l.BasicPrice,
		Price:          l.Price,
		PriceEditFlag:  l.PriceEditFlag.Encode(),
		VatPercent:     l.VatPercent,
		DeliveryType:   l.DeliveryType,
		RequestedQty:   l.RequestedQty,
		CancelledQty:   l.CancelledQty,
		ContractLineNo: l.ContractLineNo,
	}
}

func (po *BookingLinePO) ToDomain() booking.Line {
	return booking.Line{
		BookingNo:      po.BookingNo,
		LineNo:         po.LineNo,
		ContractNo:     po.ContractNo,
		StockNo:        po.StockNo,
		Quantity:       po.Quantity,
		Type:           po.Type,
		BasicPrice:     po.BasicPrice,
		Price:          po.Price,
		PriceEditFlag:  shared.DecodeFlag(po.PriceEditFlag),
		VatPercent:     po.VatPercent,
		DeliveryType:   po.DeliveryType,
		RequestedQty:   po.RequestedQty,
		CancelledQty:   po.CancelledQty,
		ContractLineNo: po.ContractLineNo,
	}
}
