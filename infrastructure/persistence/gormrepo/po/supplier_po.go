package po

import "erp/domain/supplier"

type SupplierPO struct {
	No              int64  `gorm:"column:tmsbody_no;primaryKey;autoIncrement"`
	Name            string `gorm:"column:tmsbody_name;size:50;not null"`
	Website         string `gorm:"column:tmsbody_website;size:250"`
	Status          string `gorm:"column:tmsbody_status;size:1;not null;default:'';index"`
	EditCounter     int64  `gorm:"column:tmsbody_editcounter"`
	DelegateDisplay string `gorm:"column:tmsbody_delegatedisplay;size:1"`
	IntegrationNo   int64  `gorm:"column:tmsintegration_no"`
}

func (SupplierPO) TableName() string {
	return "tmsbody"
}

func FromSupplierDomain(s supplier.Supplier) *SupplierPO {
	return &SupplierPO{
		No:              s.No,
		Name:            s.Name,
		Website:         s.Website,
		Status:          s.Status,
		EditCounter:     s.EditCounter,
		DelegateDisplay: s.DelegateDisplay,
		IntegrationNo:   s.IntegrationNo,
	}
}

func (po *SupplierPO) ToDomain() supplier.Supplier {
	return supplier.Supplier{
		No:              po.No,
		Name:            po.Name,
		Website:         po.Website,
		Status:          po.Status,
		EditCounter:     po.EditCounter,
		DelegateDisplay: po.DelegateDisplay,
		IntegrationNo:   po.IntegrationNo,
	}
}
