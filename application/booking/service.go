package booking

import (
	"context"
	"strconv"

	"erp/application/crud"
	"erp/domain/booking"
	"erp/domain/query"
	"erp/domain/shared"
)

// Service is the booking facade
type Service struct {
	*crud.Service[booking.Booking, int64]
	lines *LineService
}

// NewService creates the booking service
func NewService(store query.Store[booking.Booking, int64], lines *LineService, uow shared.UnitOfWork, opts ...crud.Option[booking.Booking, int64]) *Service {
	opts = append([]crud.Option[booking.Booking, int64]{crud.WithValidator[booking.Booking, int64](booking.Validate)}, opts...)
	return &Service{
		Service: crud.NewService(store, booking.Config, booking.Key, uow, opts...),
		lines:   lines,
	}
}

// ByCustomer lists the bookings of one customer, newest first
func (s *Service) ByCustomer(ctx context.Context, customerCode string, spec query.Spec) (query.PageResult[booking.Booking], error) {
	return s.List(ctx, spec.WithFilter("customerCode", customerCode))
}

// Lines lists the lines of one booking in line order
func (s *Service) Lines(ctx context.Context, bookingNo int64, spec query.Spec) (query.PageResult[booking.Line], error) {
	if spec.SortField == "" {
		spec.SortField = booking.LineFieldLineNo.Name
	}
	return s.lines.List(ctx, spec.WithFilter("bookingNo", strconv.FormatInt(bookingNo, 10)))
}

// LineService is the booking line facade, keyed by booking and line number
type LineService struct {
	*crud.Service[booking.Line, booking.LineKey]
}

// NewLineService creates the booking line service
func NewLineService(store query.Store[booking.Line, booking.LineKey], uow shared.UnitOfWork, opts ...crud.Option[booking.Line, booking.LineKey]) *LineService {
	opts = append([]crud.Option[booking.Line, booking.LineKey]{crud.WithValidator[booking.Line, booking.LineKey](booking.ValidateLine)}, opts...)
	return &LineService{Service: crud.NewService(store, booking.LineConfig, booking.KeyOfLine, uow, opts...)}
}
