package course

import (
	"context"
	"strings"

	"erp/application/crud"
	"erp/domain/course"
	"erp/domain/query"
	"erp/domain/shared"
)

// Lookups reads the course type and category tables
type Lookups interface {
	Types(ctx context.Context) ([]course.Type, error)
	Categories(ctx context.Context) ([]course.Category, error)
}

// Service is the course facade plus the type and category lookups
type Service struct {
	*crud.Service[course.Course, int64]
	lookups Lookups
}

// NewService creates the course service
func NewService(store query.Store[course.Course, int64], lookups Lookups, uow shared.UnitOfWork, opts ...crud.Option[course.Course, int64]) *Service {
	opts = append([]crud.Option[course.Course, int64]{crud.WithValidator[course.Course, int64](course.Validate)}, opts...)
	return &Service{
		Service: crud.NewService(store, course.Config, course.Key, uow, opts...),
		lookups: lookups,
	}
}

// GetByCode finds a course by its unique code, ignoring case
func (s *Service) GetByCode(ctx context.Context, code string) (course.Course, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return course.Course{}, false, nil
	}
	items, _, err := s.Store().Find(ctx, query.Criteria[course.Course]{
		Where:  query.HasPrefix(course.FieldCode, code),
		Orders: []query.Order[course.Course]{{Field: course.FieldCode}},
	})
	if err != nil {
		return course.Course{}, false, err
	}
	for _, c := range items {
		if strings.EqualFold(c.Code, code) {
			return c, true, nil
		}
	}
	return course.Course{}, false, nil
}

// Types lists the course types
func (s *Service) Types(ctx context.Context) ([]course.Type, error) {
	return s.lookups.Types(ctx)
}

// Categories lists the course categories
func (s *Service) Categories(ctx context.Context) ([]course.Category, error) {
	return s.lookups.Categories(ctx)
}
