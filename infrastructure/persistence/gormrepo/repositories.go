package gormrepo

import (
	"context"

	"erp/domain/booking"
	"erp/domain/course"
	"erp/domain/customer"
	"erp/domain/invoice"
	"erp/domain/stock"
	"erp/domain/supplier"
	"erp/infrastructure/persistence"
	"erp/infrastructure/persistence/gormrepo/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CustomerRepository       = Repository[customer.Customer, po.CustomerPO, string]
	InvoiceRepository        = Repository[invoice.Invoice, po.InvoicePO, int64]
	InvoiceLineRepository    = Repository[invoice.Line, po.InvoiceLinePO, int64]
	InvoiceHistoryRepository = Repository[invoice.History, po.InvoiceHistoryPO, int64]
	BookingRepository        = Repository[booking.Booking, po.BookingPO, int64]
	BookingLineRepository    = Repository[booking.Line, po.BookingLinePO, booking.LineKey]
	CourseRepository         = Repository[course.Course, po.CoursePO, int64]
	StockRepository          = Repository[stock.Stock, po.StockPO, int64]
	SupplierRepository       = Repository[supplier.Supplier, po.SupplierPO, int64]
)

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return NewRepository(db, customer.EntityName, Mapping[customer.Customer, po.CustomerPO, string]{
		FromDomain: po.FromCustomerDomain,
		ToDomain:   (*po.CustomerPO).ToDomain,
		KeyWhere:   KeyColumn[string]("cust_code"),
		EntityKey:  customer.Key,
	})
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return NewRepository(db, invoice.EntityName, Mapping[invoice.Invoice, po.InvoicePO, int64]{
		FromDomain: po.FromInvoiceDomain,
		ToDomain:   (*po.InvoicePO).ToDomain,
		KeyWhere:   KeyColumn[int64]("invoice_id"),
		EntityKey:  invoice.Key,
	})
}

func NewInvoiceLineRepository(db *gorm.DB) *InvoiceLineRepository {
	return NewRepository(db, invoice.LineEntityName, Mapping[invoice.Line, po.InvoiceLinePO, int64]{
		FromDomain: po.FromInvoiceLineDomain,
		ToDomain:   (*po.InvoiceLinePO).ToDomain,
		KeyWhere:   KeyColumn[int64]("invoice_line_id"),
		EntityKey:  invoice.LineKey,
	})
}

func NewInvoiceHistoryRepository(db *gorm.DB) *InvoiceHistoryRepository {
	return NewRepository(db, invoice.HistoryEntityName, Mapping[invoice.History, po.InvoiceHistoryPO, int64]{
		FromDomain: po.FromInvoiceHistoryDomain,
		ToDomain:   (*po.InvoiceHistoryPO).ToDomain,
		KeyWhere:   KeyColumn[int64]("history_id"),
		EntityKey:  invoice.HistoryKey,
	})
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return NewRepository(db, booking.EntityName, Mapping[booking.Booking, po.BookingPO, int64]{
		FromDomain: po.FromBookingDomain,
		ToDomain:   (*po.BookingPO).ToDomain,
		KeyWhere:   KeyColumn[int64]("tmsbooking_no"),
		EntityKey:  booking.Key,
	})
}

// NewBookingLineRepository keys lines by booking number and line number
func NewBookingLineRepository(db *gorm.DB) *BookingLineRepository {
	return NewRepository(db, booking.LineEntityName, Mapping[booking.Line, po.BookingLinePO, booking.LineKey]{
		FromDomain: po.FromBookingLineDomain,
		ToDomain:   (*po.BookingLinePO).ToDomain,
		KeyWhere: func(k booking.LineKey) clause.Expression {
			return clause.And(
				clause.Eq{Column: clause.Column{Name: "tmsbooking_no"}, Value: k.BookingNo},
				clause.Eq{Column: clause.Column{Name: "tmsbookingline_no"}, Value: k.LineNo},
			)
		},
		EntityKey: booking.KeyOfLine,
	})
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return NewRepository(db, course.EntityName, Mapping[course.Course, po.CoursePO, int64]{
		FromDomain: po.FromCourseDomain,
		ToDomain:   (*po.CoursePO).ToDomain,
		KeyWhere:   KeyColumn[int64]("tmscourse_no"),
		EntityKey:  course.Key,
	})
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return NewRepository(db, stock.EntityName, Mapping[stock.Stock, po.StockPO, int64]{
		FromDomain: po.FromStockDomain,
		ToDomain:   (*po.StockPO).ToDomain,
		KeyWhere:   KeyColumn[int64]("stock_no"),
		EntityKey:  stock.Key,
	})
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return NewRepository(db, supplier.EntityName, Mapping[supplier.Supplier, po.SupplierPO, int64]{
		FromDomain: po.FromSupplierDomain,
		ToDomain:   (*po.SupplierPO).ToDomain,
		KeyWhere:   KeyColumn[int64]("tmsbody_no"),
		EntityKey:  supplier.Key,
	})
}

// CourseLookupRepository reads the course type and category tables
type CourseLookupRepository struct {
	db *gorm.DB
}

func NewCourseLookupRepository(db *gorm.DB) *CourseLookupRepository {
	return &CourseLookupRepository{db: db}
}

func (r *CourseLookupRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Types returns every course type ordered by name
func (r *CourseLookupRepository) Types(ctx context.Context) ([]course.Type, error) {
	var rows []po.CourseTypePO
	if err := r.getDB(ctx).Order("tmscoursetype_name").Find(&rows).Error; err != nil {
		return nil, classify("course type", err)
	}
	types := make([]course.Type, 0, len(rows))
	for i := range rows {
		types = append(types, rows[i].ToDomain())
	}
	return types, nil
}

// Categories returns every course category ordered by name
func (r *CourseLookupRepository) Categories(ctx context.Context) ([]course.Category, error) {
	var rows []po.CourseCategoryPO
	if err := r.getDB(ctx).Order("tmscoursecategory_name").Find(&rows).Error; err != nil {
		return nil, classify("course category", err)
	}
	categories := make([]course.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, rows[i].ToDomain())
	}
	return categories, nil
}

// SaveType inserts or replaces a course type
func (r *CourseLookupRepository) SaveType(ctx context.Context, t course.Type) error {
	err := r.getDB(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(po.FromCourseTypeDomain(t)).Error
	return classify("course type", err)
}

// SaveCategory inserts or replaces a course category
func (r *CourseLookupRepository) SaveCategory(ctx context.Context, c course.Category) error {
	err := r.getDB(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(po.FromCourseCategoryDomain(c)).Error
	return classify("course category", err)
}
