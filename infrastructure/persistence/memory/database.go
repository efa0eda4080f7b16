package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"erp/domain/booking"
	"erp/domain/course"
	"erp/domain/customer"
	"erp/domain/invoice"
	"erp/domain/stock"
	"erp/domain/supplier"
)

// Database holds one collection per table for the memory driver
type Database struct {
	Customers        *Collection[customer.Customer, string]
	Invoices         *Collection[invoice.Invoice, int64]
	InvoiceLines     *Collection[invoice.Line, int64]
	InvoiceHistories *Collection[invoice.History, int64]
	Bookings         *Collection[booking.Booking, int64]
	BookingLines     *Collection[booking.Line, booking.LineKey]
	Courses          *Collection[course.Course, int64]
	Stock            *Collection[stock.Stock, int64]
	Suppliers        *Collection[supplier.Supplier, int64]
	CourseLookups    *CourseLookups
	UnitOfWork       *UnitOfWork
}

// NewDatabase creates empty collections sharing one unit of work
func NewDatabase() *Database {
	db := &Database{
		Customers: NewCollection(customer.EntityName, customer.Key),
		Invoices: NewCollection(invoice.EntityName, invoice.Key,
			WithSequence[invoice.Invoice, int64](func(i invoice.Invoice, next int64) invoice.Invoice { i.ID = next; return i }),
			WithUnique[invoice.Invoice, int64](func(i invoice.Invoice) string { return fmt.Sprintf("%s/%d", i.ContractCode, i.SeqNo) }),
		),
		InvoiceLines: NewCollection(invoice.LineEntityName, invoice.LineKey,
			WithSequence[invoice.Line, int64](func(l invoice.Line, next int64) invoice.Line { l.ID = next; return l }),
		),
		InvoiceHistories: NewCollection(invoice.HistoryEntityName, invoice.HistoryKey,
			WithSequence[invoice.History, int64](func(h invoice.History, next int64) invoice.History { h.ID = next; return h }),
		),
		Bookings: NewCollection(booking.EntityName, booking.Key,
			WithSequence[booking.Booking, int64](func(b booking.Booking, next int64) booking.Booking { b.No = next; return b }),
		),
		BookingLines: NewCollection(booking.LineEntityName, booking.KeyOfLine),
		Courses: NewCollection(course.EntityName, course.Key,
			WithSequence[course.Course, int64](func(c course.Course, next int64) course.Course { c.No = next; return c }),
			WithUnique[course.Course, int64](func(c course.Course) string { return strings.ToUpper(c.Code) }),
		),
		Stock: NewCollection(stock.EntityName, stock.Key,
			WithSequence[stock.Stock, int64](func(s stock.Stock, next int64) stock.Stock { s.No = next; return s }),
		),
		Suppliers: NewCollection(supplier.EntityName, supplier.Key,
			WithSequence[supplier.Supplier, int64](func(s supplier.Supplier, next int64) supplier.Supplier { s.No = next; return s }),
		),
		CourseLookups: NewCourseLookups(),
	}
	db.UnitOfWork = NewUnitOfWork(
		db.Customers, db.Invoices, db.InvoiceLines, db.InvoiceHistories,
		db.Bookings, db.BookingLines, db.Courses, db.Stock, db.Suppliers, db.CourseLookups,
	)
	return db
}

// CourseLookups holds the course type and category tables
type CourseLookups struct {
	mu         sync.RWMutex
	types      []course.Type
	categories []course.Category
}

func NewCourseLookups() *CourseLookups {
	return &CourseLookups{}
}

// Types returns every course type ordered by name
func (l *CourseLookups) Types(ctx context.Context) ([]course.Type, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	types := append(make([]course.Type, 0, len(l.types)), l.types...)
	slices.SortStableFunc(types, func(a, b course.Type) int { return strings.Compare(a.Name, b.Name) })
	return types, nil
}

// Categories returns every course category ordered by name
func (l *CourseLookups) Categories(ctx context.Context) ([]course.Category, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	categories := append(make([]course.Category, 0, len(l.categories)), l.categories...)
	slices.SortStableFunc(categories, func(a, b course.Category) int { return strings.Compare(a.Name, b.Name) })
	return categories, nil
}

// SaveType inserts or replaces a course type by code
func (l *CourseLookups) SaveType(ctx context.Context, t course.Type) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := slices.IndexFunc(l.types, func(x course.Type) bool { return x.Code == t.Code }); i >= 0 {
		l.types[i] = t
		return nil
	}
	l.types = append(l.types, t)
	return nil
}

// SaveCategory inserts or replaces a course category, numbering new ones
func (l *CourseLookups) SaveCategory(ctx context.Context, c course.Category) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c.No == 0 {
		for _, existing := range l.categories {
			c.No = max(c.No, existing.No)
		}
		c.No++
	}
	if i := slices.IndexFunc(l.categories, func(x course.Category) bool { return x.No == c.No }); i >= 0 {
		l.categories[i] = c
		return nil
	}
	l.categories = append(l.categories, c)
	return nil
}

// Snapshot lets the unit of work roll lookups back with the collections
func (l *CourseLookups) Snapshot() (restore func()) {
	l.mu.RLock()
	types, categories := slices.Clone(l.types), slices.Clone(l.categories)
	l.mu.RUnlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.types, l.categories = types, categories
	}
}
