package customer

import (
	"context"
	"strings"

	"erp/application/crud"
	"erp/domain/customer"
	"erp/domain/query"
	"erp/domain/shared"
)

// LetterPageSize is the default size of a letter listing
const LetterPageSize = 200

// Service is the customer facade: generic list, search, statistics and
// writes plus the alphabetical letter listing.
type Service struct {
	*crud.Service[customer.Customer, string]
}

// NewService creates the customer service
func NewService(store query.Store[customer.Customer, string], uow shared.UnitOfWork, opts ...crud.Option[customer.Customer, string]) *Service {
	opts = append([]crud.Option[customer.Customer, string]{crud.WithValidator[customer.Customer, string](customer.Validate)}, opts...)
	return &Service{Service: crud.NewService(store, customer.Config, customer.Key, uow, opts...)}
}

// ByLetter lists customers whose code or name starts with letter, or with a
// digit for "0-9". A blank letter yields an empty page.
func (s *Service) ByLetter(ctx context.Context, letter string, spec query.Spec) (query.PageResult[customer.Customer], error) {
	letter = strings.TrimSpace(letter)
	if letter == "" {
		spec = spec.Normalize(LetterPageSize)
		return query.NewPageResult[customer.Customer](nil, 0, spec), nil
	}
	if spec.PageSize < 1 || spec.PageSize > query.MaxPageSize {
		spec.PageSize = LetterPageSize
	}
	return s.List(ctx, spec.WithFilter("letter", letter))
}
