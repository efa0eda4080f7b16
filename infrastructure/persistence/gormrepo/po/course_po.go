package po

import (
	"erp/domain/course"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

type CoursePO struct {
	No               int64           `gorm:"column:tmscourse_no;primaryKey;autoIncrement"`
	TypeCode         string          `gorm:"column:tmscoursetype_code;size:1;index"`
	Code             string          `gorm:"column:tmscourse_code;size:20;not null;uniqueIndex"`
	Name             string          `gorm:"column:tmscourse_name;size:200;not null"`
	WebCode          string          `gorm:"column:tmscourse_webcode;size:50"`
	Status           string          `gorm:"column:tmscourse_status;size:1;index"`
	Publish          string          `gorm:"column:tmscourse_publish;size:1"`
	Duration         decimal.Decimal `gorm:"column:tmscourse_duration;type:decimal(6,2)"`
	MinDelegates     int64           `gorm:"column:tmscourse_mindelegate"`
	MaxDelegates     int64           `gorm:"column:tmscourse_maxdelegate"`
	SupplierCost     decimal.Decimal `gorm:"column:tmscourse_suppliercost;type:decimal(14,2)"`
	SundryCost       decimal.Decimal `gorm:"column:tmscourse_sundrycost;type:decimal(14,2)"`
	SupplierCode     string          `gorm:"column:smsupplier_code;size:10"`
	InternallyHosted string          `gorm:"column:tmscourse_internallyhosted;size:1"`
	Website          string          `gorm:"column:tmscourse_website;size:255"`
	CategoryNo       int64           `gorm:"column:tmscoursecategory_no"`
	JoiningURL       string          `gorm:"column:tmscourse_joiningurl;size:255"`
}

func (CoursePO) TableName() string {
	return "tmscourse"
}

func FromCourseDomain(c course.Course) *CoursePO {
	return &CoursePO{
		No:               c.No,
		TypeCode:         c.TypeCode,
		Code:             c.Code,
		Name:             c.Name,
		WebCode:          c.WebCode,
		Status:           c.Status,
		Publish:          c.Published.Encode(),
		Duration:         c.Duration,
		MinDelegates:     c.MinDelegates,
		MaxDelegates:     c.MaxDelegates,
		SupplierCost:     c.SupplierCost,
		SundryCost:       c.SundryCost,
		SupplierCode:     c.SupplierCode,
		InternallyHosted: c.InternallyHosted.Encode(),
		Website:          c.Website,
		CategoryNo:       c.CategoryNo,
		JoiningURL:       c.JoiningURL,
	}
}

func (po *CoursePO) ToDomain() course.Course {
	return course.Course{
		No:               po.No,
		TypeCode:         po.TypeCode,
		Code:             po.Code,
		Name:             po.Name,
		WebCode:          po.WebCode,
		Status:           po.Status,
		Published:        shared.DecodeFlag(po.Publish),
		Duration:         po.Duration,
		MinDelegates:     po.MinDelegates,
		MaxDelegates:     po.MaxDelegates,
		SupplierCost:     po.SupplierCost,
		SundryCost:       po.SundryCost,
		SupplierCode:     po.SupplierCode,
		InternallyHosted: shared.DecodeFlag(po.InternallyHosted),
		Website:          po.Website,
		CategoryNo:       po.CategoryNo,
		JoiningURL:       po.JoiningURL,
	}
}

type CourseTypePO struct {
	Code    string `gorm:"column:tmscoursetype_code;primaryKey;size:1"`
	Name    string `gorm:"column:tmscoursetype_name;size:50"`
	Status  string `gorm:"column:tmscoursetype_status;size:1"`
	IsEvent string `gorm:"column:tmscoursetype_isevent;size:1"`
}

func (CourseTypePO) TableName() string {
	return "tmscoursetype"
}

func (po *CourseTypePO) ToDomain() course.Type {
	return course.Type{Code: po.Code, Name: po.Name, Status: po.Status, IsEvent: shared.DecodeFlag(po.IsEvent)}
}

func FromCourseTypeDomain(t course.Type) *CourseTypePO {
	return &CourseTypePO{Code: t.Code, Name: t.Name, Status: t.Status, IsEvent: t.IsEvent.Encode()}
}

type CourseCategoryPO struct {
	No     int64  `gorm:"column:tmscoursecategory_no;primaryKey;autoIncrement"`
	Name   string `gorm:"column:tmscoursecategory_name;size:50"`
	Status string `gorm:"column:tmscoursecategory_status;size:1"`
}

func (CourseCategoryPO) TableName() string {
	return "tmscoursecategory"
}

func (po *CourseCategoryPO) ToDomain() course.Category {
	return course.Category{No: po.No, Name: po.Name, Status: po.Status}
}

func FromCourseCategoryDomain(c course.Category) *CourseCategoryPO {
	return &CourseCategoryPO{No: c.No, Name: c.Name, Status: c.Status}
}
