package po

import (
	"erp/domain/customer"
	"erp/domain/shared"
)

type CustomerPO struct {
	Code        string   `gorm:"column:cust_code;primaryKey;size:10"`
	Name        string   `gorm:"column:cust_name;size:100;not null;index"`
	Address1    string   `gorm:"column:cust_add1;size:100"`
	Address2    string   `gorm:"column:cust_add2;size:100"`
	Address3    string   `gorm:"column:cust_add3;size:100"`
	Town        string   `gorm:"column:cust_town;size:50"`
	County      string   `gorm:"column:cust_county;size:50"`
	Postcode    string   `gorm:"column:cust_postcode;size:10"`
	Telephone   string   `gorm:"column:cust_tel;size:30"`
	Fax         string   `gorm:"column:cust_fax;size:30"`
	Email       string   `gorm:"column:cust_email;size:255"`
	VatNumber   string   `gorm:"column:cust_vatno;size:20"`
	ContactFlag string   `gorm:"column:cust_contactflag;size:1"`
	VatFlag     string   `gorm:"column:cust_vatflag;size:1"`
	NationNo    *int64   `gorm:"column:nation_no"`
	Discount    *float64 `gorm:"column:cust_discount"`
	TypeCode    string   `gorm:"column:custtype_code;size:10;index"`
	StatusCode  string   `gorm:"column:custstatus_code;size:10;index"`
}

func (CustomerPO) TableName() string {
	return "cust"
}

func FromCustomerDomain(c customer.Customer) *CustomerPO {
	return &CustomerPO{
		Code:        c.Code,
		Name:        c.Name,
		Address1:    c.Address1,
		Address2:    c.Address2,
		Address3:    c.Address3,
		Town:        c.Town,
		County:      c.County,
		Postcode:    c.Postcode,
		Telephone:   c.Telephone,
		Fax:         c.Fax,
		Email:       c.Email,
		VatNumber:   c.VatNumber,
		ContactFlag: c.ContactFlag.Encode(),
		VatFlag:     c.VatFlag.Encode(),
		NationNo:    c.NationNo,
		Discount:    c.Discount,
		TypeCode:    c.TypeCode,
		StatusCode:  c.StatusCode,
	}
}

func (po *CustomerPO) ToDomain() customer.Customer {
	return customer.Customer{
		Code:        po.Code,
		Name:        po.Name,
		Address1:    po.Address1,
		Address2:    po.Address2,
		Address3:    po.Address3,
		Town:        po.Town,
		County:      po.County,
		Postcode:    po.Postcode,
		Telephone:   po.Telephone,
		Fax:         po.Fax,
		Email:       po.Email,
		VatNumber:   po.VatNumber,
		ContactFlag: shared.DecodeFlag(po.ContactFlag),
		VatFlag:     shared.DecodeFlag(po.VatFlag),
		NationNo:    po.NationNo,
		Discount:    po.Discount,
		TypeCode:    po.TypeCode,
		StatusCode:  po.StatusCode,
	}
}
