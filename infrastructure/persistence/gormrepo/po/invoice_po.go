package po

import (
	"time"

	"erp/domain/invoice"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

type InvoicePO struct {
	ID            int64           `gorm:"column:invoice_id;primaryKey;autoIncrement"`
	ContractCode  string          `gorm:"column:contract_code;size:20;not null;uniqueIndex:idx_invoice_contract_seq"`
	SeqNo         int64           `gorm:"column:invoice_seqno;not null;uniqueIndex:idx_invoice_contract_seq"`
	CustomerCode  string          `gorm:"column:cust_code;size:10;index"`
	ContractNo    int64           `gorm:"column:contract_no"`
	TypeCode      string          `gorm:"column:invoicetype_code;size:10"`
	StatusCode    string          `gorm:"column:invoicestatus_code;size:1;index"`
	CreateDate    *time.Time      `gorm:"column:invoice_createdate"`
	StartDate     *time.Time      `gorm:"column:invoice_startdate"`
	EndDate       *time.Time      `gorm:"column:invoice_enddate"`
	Value         decimal.Decimal `gorm:"column:invoice_value;type:decimal(14,2)"`
	Vat           decimal.Decimal `gorm:"column:invoice_vat;type:decimal(14,2)"`
	Discount      float64         `gorm:"column:invoice_discount"`
	OrderRef      string          `gorm:"column:invoice_order;size:50"`
	BookingNo     *int64          `gorm:"column:tmsbooking_no"`
	ProcessedDate *time.Time      `gorm:"column:processed_date"`
	ProcessedBy   string          `gorm:"column:processed_by;size:50"`
}

func (InvoicePO) TableName() string {
	return "hss_invoice"
}

func FromInvoiceDomain(i invoice.Invoice) *InvoicePO {
	return &InvoicePO{
		ID:            i.ID,
		ContractCode:  i.ContractCode,
		SeqNo:         i.SeqNo,
		CustomerCode:  i.CustomerCode,
		ContractNo:    i.ContractNo,
		TypeCode:      i.TypeCode,
		StatusCode:    i.StatusCode,
		CreateDate:    i.CreateDate,
		StartDate:     i.StartDate,
		EndDate:       i.EndDate,
		Value:         i.Value,
		Vat:           i.Vat,
		Discount:      i.Discount,
		OrderRef:      i.OrderRef,
		BookingNo:     i.BookingNo,
		ProcessedDate: i.ProcessedDate,
		ProcessedBy:   i.ProcessedBy,
	}
}

func (po *InvoicePO) ToDomain() invoice.Invoice {
	return invoice.Invoice{
		ID:            po.ID,
		ContractCode:  po.ContractCode,
		SeqNo:         po.SeqNo,
		CustomerCode:  po.CustomerCode,
		ContractNo:    po.ContractNo,
		TypeCode:      po.TypeCode,
		StatusCode:    po.StatusCode,
		CreateDate:    po.CreateDate,
		StartDate:     po.StartDate,
		EndDate:       po.EndDate,
		Value:         po.Value,
		Vat:           po.Vat,
		Discount:      po.Discount,
		OrderRef:      po.OrderRef,
		BookingNo:     po.BookingNo,
		ProcessedDate: po.ProcessedDate,
		ProcessedBy:   po.ProcessedBy,
	}
}

type InvoiceLinePO struct {
	ID             int64           `gorm:"column:invoice_line_id;primaryKey;autoIncrement"`
	InvoiceID      int64           `gorm:"column:invoice_id;not null;index"`
	ContractCode   string          `gorm:"column:contract_code;size:20"`
	SeqNo          int64           `gorm:"column:invoice_seqno"`
	ContractLineNo int64           `gorm:"column:contractline_no"`
	LineNo         int64           `gorm:"column:invoiceline_lineno"`
	StockNo        int64           `gorm:"column:stock_no;index"`
	StockName      string          `gorm:"column:stock_name;size:100"`
	StockTypeCode  string          `gorm:"column:stocktype_code;size:10"`
	Quantity       int64           `gorm:"column:invoiceline_qty"`
	Price          decimal.Decimal `gorm:"column:invoiceline_price;type:decimal(14,2)"`
	Charge         decimal.Decimal `gorm:"column:invoiceline_charge;type:decimal(14,2)"`
	DiscountFlag   string          `gorm:"column:invoiceline_discountflag;size:1"`
	VatPercent     float64         `gorm:"column:invoiceline_vatpercent"`
	DeliveryDate   *time.Time      `gorm:"column:invoiceline_deliverydate"`
	DeliveryNo     string          `gorm:"column:invoiceline_deliveryno;size:20"`
	Refund         decimal.Decimal `gorm:"column:invoiceline_offhirediscount;type:decimal(14,2)"`
	ProcessedDate  *time.Time      `gorm:"column:processed_date"`
}

func (InvoiceLinePO) TableName() string {
	return "hss_invoiceline"
}

func FromInvoiceLineDomain(l invoice.Line) *InvoiceLinePO {
	return &InvoiceLinePO{
		ID:             l.ID,
		InvoiceID:      l.InvoiceID,
		ContractCode:   l.ContractCode,
		SeqNo:          l.SeqNo,
		ContractLineNo: l.ContractLineNo,
		LineNo:         l.LineNo,
		StockNo:        l.StockNo,
		StockName:      l.StockName,
		StockTypeCode:  l.StockTypeCode,
		Quantity:       l.Quantity,
		Price:          l.Price,
		Charge:         l.Charge,
		DiscountFlag:   l.DiscountFlag.Encode(),
		VatPercent:     l.VatPercent,
		DeliveryDate:   l.DeliveryDate,
		DeliveryNo:     l.DeliveryNo,
		Refund:         l.Refund,
		ProcessedDate:  l.ProcessedDate,
	}
}

func (po *InvoiceLinePO) ToDomain() invoice.Line {
	return invoice.Line{
		ID:             po.ID,
		InvoiceID:      po.InvoiceID,
		ContractCode:   po.ContractCode,
		SeqNo:          po.SeqNo,
		ContractLineNo: po.ContractLineNo,
		LineNo:         po.LineNo,
		StockNo:        po.StockNo,
		StockName:      po.StockName,
		StockTypeCode:  po.StockTypeCode,
		Quantity:       po.Quantity,
		Price:          po.Price,
		Charge:         po.Charge,
		DiscountFlag:   shared.DecodeFlag(po.DiscountFlag),
		VatPercent:     po.VatPercent,
		DeliveryDate:   po.DeliveryDate,
		DeliveryNo:     po.DeliveryNo,
		Refund:         po.Refund,
		ProcessedDate:  po.ProcessedDate,
	}
}

type InvoiceHistoryPO struct {
	ID        int64     `gorm:"column:history_id;primaryKey;autoIncrement"`
	InvoiceID int64     `gorm:"column:invoice_id;not null;index"`
	Type      string    `gorm:"column:history_type;size:20"`
	Title     string    `gorm:"column:history_title;size:200;not null"`
	Content   string    `gorm:"column:history_content;type:text"`
	CreatedBy string    `gorm:"column:created_by;size:50"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (InvoiceHistoryPO) TableName() string {
	return "hss_invoicehistory"
}

func FromInvoiceHistoryDomain(h invoice.History) *InvoiceHistoryPO {
	return &InvoiceHistoryPO{
		ID:        h.ID,
		InvoiceID: h.InvoiceID,
		Type:      h.Type,
		Title:     h.Title,
		Content:   h.Content,
		CreatedBy: h.CreatedBy,
		CreatedAt: h.CreatedAt,
	}
}

func (po *InvoiceHistoryPO) ToDomain() invoice.History {
	return invoice.History{
		ID:        po.ID,
		InvoiceID: po.InvoiceID,
		Type:      po.Type,
		Title:     po.Title,
		Content:   po.Content,
		CreatedBy: po.CreatedBy,
		CreatedAt: po.CreatedAt,
	}
}
