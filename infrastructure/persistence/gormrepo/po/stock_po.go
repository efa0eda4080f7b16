package po

import (
	"erp/domain/stock"

	"github.com/shopspring/decimal"
)

type StockPO struct {
	No         int64           `gorm:"column:stock_no;primaryKey;autoIncrement"`
	DivisionNo int64           `gorm:"column:division_no;index"`
	DeptNo     int64           `gorm:"column:dept_no"`
	Code       string          `gorm:"column:stock_code;size:20;not null"`
	Name       string          `gorm:"column:stock_name;size:100"`
	ShortName  string          `gorm:"column:stock_shortname;size:50"`
	LongName   string          `gorm:"column:stock_longname;size:255"`
	Status     string          `gorm:"column:stock_status;size:1;index"`
	TypeCode   string          `gorm:"column:stocktype_code1;size:10"`
	Residual   decimal.Decimal `gorm:"column:stock_residual;type:decimal(14,2)"`
}

func (StockPO) TableName() string {
	return "stock"
}

func FromStockDomain(s stock.Stock) *StockPO {
	return &StockPO{
		No:         s.No,
		DivisionNo: s.DivisionNo,
		DeptNo:     s.DeptNo,
		Code:       s.Code,
		Name:       s.Name,
		ShortName:  s.ShortName,
		LongName:   s.LongName,
		Status:     s.Status,
		TypeCode:   s.TypeCode,
		Residual:   s.Residual,
	}
}

func (po *StockPO) ToDomain() stock.Stock {
	return stock.Stock{
		No:         po.No,
		DivisionNo: po.DivisionNo,
		DeptNo:     po.DeptNo,
		Code:       po.Code,
		Name:       po.Name,
		ShortName:  po.ShortName,
		LongName:   po.LongName,
		Status:     po.Status,
		TypeCode:   po.TypeCode,
		Residual:   po.Residual,
	}
}
