package cmd

import (
	"context"
	"fmt"
	"net/http"

	"erp/api"
	"erp/api/booking"
	"erp/api/course"
	"erp/api/customer"
	"erp/api/health"
	"erp/api/invoice"
	"erp/api/stock"
	"erp/api/supplier"
	bookingapp "erp/application/booking"
	courseapp "erp/application/course"
	"erp/application/crud"
	customerapp "erp/application/customer"
	invoiceapp "erp/application/invoice"
	stockapp "erp/application/stock"
	supplierapp "erp/application/supplier"
	"erp/config"
	domainbooking "erp/domain/booking"
	domaincourse "erp/domain/course"
	domaincustomer "erp/domain/customer"
	domaininvoice "erp/domain/invoice"
	domainstock "erp/domain/stock"
	domainsupplier "erp/domain/supplier"
	"erp/pkg/logger"

	"go.uber.org/zap"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg         *config.Config
	controllers []api.Controller
	initLogger  bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:        cfg,
		initLogger: true,
	}
}

// WithController adds a controller next to the built-in ones
func (b *AppBuilder) WithController(c api.Controller) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// SkipLoggerInit keeps the logger already installed, for tests
func (b *AppBuilder) SkipLoggerInit() *AppBuilder {
	b.initLogger = false
	return b
}

// Build wires logger, database, services, controllers and the HTTP server
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if b.initLogger {
		if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("driver", b.cfg.Database.Driver))

	st, err := openStores(ctx, b.cfg)
	if err != nil {
		return nil, err
	}

	controllers := append(b.services(st), b.controllers...)
	router := api.NewRouter(b.cfg, health.NewController(b.cfg, st.pinger), controllers...)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		close:  st.close,
	}, nil
}

// services creates one service per entity and the controllers exposing them
func (b *AppBuilder) services(st *stores) []api.Controller {
	q := b.cfg.Query

	invoiceOpts := invoiceapp.WithPageSizes(
		q.PageSize(domaininvoice.EntityName, 0),
		q.PageSize(domaininvoice.LineEntityName, 0),
		q.PageSize(domaininvoice.HistoryEntityName, 0),
	)
	invoiceLines := invoiceapp.NewLineService(st.invoiceLines, st.uow, invoiceOpts)
	invoices := invoiceapp.NewService(st.invoices, invoiceLines, st.invoiceHistories, st.uow, invoiceOpts)

	bookingLines := bookingapp.NewLineService(st.bookingLines, st.uow,
		crud.WithPageSize[domainbooking.Line, domainbooking.LineKey](q.PageSize(domainbooking.LineEntityName, 0)))
	bookings := bookingapp.NewService(st.bookings, bookingLines, st.uow,
		crud.WithPageSize[domainbooking.Booking, int64](q.PageSize(domainbooking.EntityName, 0)))

	customers := customerapp.NewService(st.customers, st.uow,
		crud.WithPageSize[domaincustomer.Customer, string](q.PageSize(domaincustomer.EntityName, 0)))
	courses := courseapp.NewService(st.courses, st.courseLookups, st.uow,
		crud.WithPageSize[domaincourse.Course, int64](q.PageSize(domaincourse.EntityName, 0)))
	stockItems := stockapp.NewService(st.stock, st.invoiceLines, st.uow,
		crud.WithPageSize[domainstock.Stock, int64](q.PageSize(domainstock.EntityName, 0)))
	suppliers := supplierapp.NewService(st.suppliers, st.uow,
		crud.WithPageSize[domainsupplier.Supplier, int64](q.PageSize(domainsupplier.EntityName, 0)))

	return []api.Controller{
		customer.NewController(customers),
		invoice.NewController(invoices, invoiceLines),
		booking.NewController(bookings, bookingLines),
		course.NewController(courses),
		stock.NewController(stockItems),
		supplier.NewController(suppliers),
	}
}
