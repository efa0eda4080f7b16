package supplier

import (
	"context"

	"erp/application/crud"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/domain/supplier"
)

// Service is the supplier facade
type Service struct {
	*crud.Service[supplier.Supplier, int64]
}

// NewService creates the supplier service
func NewService(store query.Store[supplier.Supplier, int64], uow shared.UnitOfWork, opts ...crud.Option[supplier.Supplier, int64]) *Service {
	opts = append([]crud.Option[supplier.Supplier, int64]{crud.WithValidator[supplier.Supplier, int64](supplier.Validate)}, opts...)
	return &Service{Service: crud.NewService(store, supplier.Config, supplier.Key, uow, opts...)}
}

// Active lists suppliers that can be offered on new courses, by name
func (s *Service) Active(ctx context.Context, spec query.Spec) (query.PageResult[supplier.Supplier], error) {
	return s.ListWhere(ctx, spec, supplier.ActivePredicate())
}
