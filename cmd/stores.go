package cmd

import (
	"context"
	"fmt"

	"erp/api/health"
	courseapp "erp/application/course"
	"erp/config"
	"erp/domain/booking"
	"erp/domain/course"
	"erp/domain/customer"
	"erp/domain/invoice"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/domain/stock"
	"erp/domain/supplier"
	"erp/infrastructure/persistence/gormrepo"
	"erp/infrastructure/persistence/memory"
	"erp/infrastructure/persistence/retry"
	"erp/infrastructure/remote/bookingapi"
	"erp/pkg/logger"

	"go.uber.org/zap"
)

// stores is the persistence layer selected by database.driver
type stores struct {
	customers        query.Store[customer.Customer, string]
	invoices         query.Store[invoice.Invoice, int64]
	invoiceLines     query.Store[invoice.Line, int64]
	invoiceHistories query.Store[invoice.History, int64]
	bookings         query.Store[booking.Booking, int64]
	bookingLines     query.Store[booking.Line, booking.LineKey]
	courses          query.Store[course.Course, int64]
	stock            query.Store[stock.Stock, int64]
	suppliers        query.Store[supplier.Supplier, int64]
	courseLookups    courseapp.Lookups
	uow              shared.UnitOfWork

	// pinger is nil for the memory driver, which is always ready
	pinger health.Pinger
	close  func() error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	st, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ExternalAPI.UseForBookings {
		remote, err := bookingapi.New(bookingapi.FromAppConfig(cfg.ExternalAPI), nil)
		if err != nil {
			_ = st.close()
			return nil, err
		}
		logger.Info("Serving bookings from the booking API", zap.String("base_url", cfg.ExternalAPI.BookingsBaseURL))
		st.bookings = remote
	}
	return st, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Database.Driver == "memory" {
		logger.Info("Using in-memory persistence layer")
		return memoryStores(memory.NewDatabase()), nil
	}

	db, err := gormrepo.Open(ctx, gormrepo.FromAppConfig(cfg.Database), retry.FromAppConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Database.Driver, err)
	}

	if cfg.IsDevelopment() || cfg.Database.AutoMigrate {
		if err := gormrepo.AutoMigrate(db); err != nil {
			_ = gormrepo.Close(db)
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = gormrepo.Close(db)
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	logger.Info("Using GORM persistence layer", zap.String("driver", cfg.Database.Driver))
	return &stores{
		customers:        gormrepo.NewCustomerRepository(db),
		invoices:         gormrepo.NewInvoiceRepository(db),
		invoiceLines:     gormrepo.NewInvoiceLineRepository(db),
		invoiceHistories: gormrepo.NewInvoiceHistoryRepository(db),
		bookings:         gormrepo.NewBookingRepository(db),
		bookingLines:     gormrepo.NewBookingLineRepository(db),
		courses:          gormrepo.NewCourseRepository(db),
		stock:            gormrepo.NewStockRepository(db),
		suppliers:        gormrepo.NewSupplierRepository(db),
		courseLookups:    gormrepo.NewCourseLookupRepository(db),
		uow:              gormrepo.NewUnitOfWork(db),
		pinger:           sqlDB,
		close:            sqlDB.Close,
	}, nil
}

func memoryStores(db *memory.Database) *stores {
	return &stores{
		customers:        db.Customers,
		invoices:         db.Invoices,
		invoiceLines:     db.InvoiceLines,
		invoiceHistories: db.InvoiceHistories,
		bookings:         db.Bookings,
		bookingLines:     db.BookingLines,
		courses:          db.Courses,
		stock:            db.Stock,
		suppliers:        db.Suppliers,
		courseLookups:    db.CourseLookups,
		uow:              db.UnitOfWork,
		close:            func() error { return nil },
	}
}
