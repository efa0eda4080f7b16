package gormrepo

import (
	"fmt"

	"erp/infrastructure/persistence/gormrepo/po"
	"erp/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every persistence object in migration order
func Models() []any {
	return []any{
		&po.CustomerPO{},
		&po.InvoicePO{},
		&po.InvoiceLinePO{},
		&po.InvoiceHistoryPO{},
		&po.BookingPO{},
		&po.BookingLinePO{},
		&po.CourseTypePO{},
		&po.CourseCategoryPO{},
		&po.CoursePO{},
		&po.StockPO{},
		&po.SupplierPO{},
	}
}

// AutoMigrate creates or alters the tables. Production schemas are owned by
// the database, so callers only run this in development or when
// database.auto_migrate is set.
func AutoMigrate(db *gorm.DB) error {
	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("Database schema migrated", zap.Int("tables", len(models)))
	return nil
}
