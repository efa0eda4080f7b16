package stock

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"erp/application/crud"
	"erp/domain/invoice"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/domain/stock"
)

// Service is the stock facade plus division and name lookups
type Service struct {
	*crud.Service[stock.Stock, int64]
	invoiceLines query.Source[invoice.Line]
}

// NewService creates the stock service. invoiceLines may be nil; when set,
// Names falls back to the stock names recorded on invoice lines.
func NewService(store query.Store[stock.Stock, int64], invoiceLines query.Source[invoice.Line], uow shared.UnitOfWork, opts ...crud.Option[stock.Stock, int64]) *Service {
	opts = append([]crud.Option[stock.Stock, int64]{crud.WithValidator[stock.Stock, int64](stock.Validate)}, opts...)
	return &Service{
		Service:      crud.NewService(store, stock.Config, stock.Key, uow, opts...),
		invoiceLines: invoiceLines,
	}
}

// Divisions lists the distinct division numbers in ascending order
func (s *Service) Divisions(ctx context.Context) ([]int64, error) {
	var values []string
	if d, ok := s.Store().(query.Distincter[stock.Stock]); ok {
		var err error
		if values, err = d.Distinct(ctx, nil, stock.FieldDivision); err != nil {
			return nil, err
		}
	} else {
		items, _, err := s.Store().Find(ctx, query.Criteria[stock.Stock]{})
		if err != nil {
			return nil, err
		}
		values = query.Distinct(items, stock.FieldDivision)
	}

	divisions := make([]int64, 0, len(values))
	for _, v := range values {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			divisions = append(divisions, n)
		}
	}
	slices.Sort(divisions)
	return slices.Compact(divisions), nil
}

// Names maps stock numbers to display names. Numbers missing from the stock
// table are looked up on invoice lines; numbers found nowhere are omitted.
func (s *Service) Names(ctx context.Context, stockNos []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(stockNos))
	if len(stockNos) == 0 {
		return names, nil
	}

	items, _, err := s.Store().Find(ctx, query.Criteria[stock.Stock]{Where: query.In(stock.FieldNo, toAny(stockNos)...)})
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = item.DisplayName()
		}
		if _, seen := names[item.No]; !seen && name != "" {
			names[item.No] = name
		}
	}

	var missing []int64
	for _, no := range stockNos {
		if _, ok := names[no]; !ok {
			missing = append(missing, no)
		}
	}
	if len(missing) == 0 || s.invoiceLines == nil {
		return names, nil
	}

	lines, _, err := s.invoiceLines.Find(ctx, query.Criteria[invoice.Line]{
		Where:  query.In(invoice.LineFieldStockNo, toAny(missing)...),
		Orders: []query.Order[invoice.Line]{{Field: invoice.LineFieldID}},
	})
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		name := strings.TrimSpace(line.StockName)
		if _, seen := names[line.StockNo]; !seen && name != "" {
			names[line.StockNo] = name
		}
	}
	return names, nil
}

func toAny(values []int64) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
