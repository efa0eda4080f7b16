package invoice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"erp/application/crud"
	"erp/domain/invoice"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SystemAuthor signs history entries written automatically
const SystemAuthor = "system"

// Option configures the invoice services
type Option func(*settings)

type settings struct {
	now             func() time.Time
	pageSize        int
	linePageSize    int
	historyPageSize int
}

// WithClock replaces time.Now, used for overdue checks and date ranges
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithPageSizes overrides the default page sizes of invoices, lines and
// history. Zero keeps the entity default.
func WithPageSizes(invoices, lines, history int) Option {
	return func(s *settings) {
		s.pageSize, s.linePageSize, s.historyPageSize = invoices, lines, history
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Service is the invoice facade. Every invoice write appends a system
// history entry inside the same unit of work.
type Service struct {
	*crud.Service[invoice.Invoice, int64]
	lines   *LineService
	history *crud.Service[invoice.History, int64]
	uow     shared.UnitOfWork
	now     func() time.Time
}

// NewService creates the invoice service
func NewService(
	invoices query.Store[invoice.Invoice, int64],
	lines *LineService,
	history query.Store[invoice.History, int64],
	uow shared.UnitOfWork,
	opts ...Option,
) *Service {
	cfg := newSettings(opts)
	s := &Service{
		lines: lines,
		history: crud.NewService(history, invoice.HistoryConfig, invoice.HistoryKey, uow,
			crud.WithValidator[invoice.History, int64](invoice.ValidateHistory),
			crud.WithPageSize[invoice.History, int64](cfg.historyPageSize),
		),
		uow: uow,
		now: cfg.now,
	}
	s.Service = crud.NewService(invoices, invoice.NewConfig(cfg.now), invoice.Key, uow,
		crud.WithValidator[invoice.Invoice, int64](invoice.Validate),
		crud.WithPageSize[invoice.Invoice, int64](cfg.pageSize),
		crud.WithAfterWrite[invoice.Invoice, int64](s.recordChange),
	)
	return s
}

// Create stamps the processed date and creation date, then inserts
func (s *Service) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	now := s.now()
	if inv.CreateDate == nil {
		inv.CreateDate = &now
	}
	inv.ProcessedDate = &now
	return s.Service.Create(ctx, inv)
}

// Update stamps the processed date, then replaces the invoice
func (s *Service) Update(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, bool, error) {
	now := s.now()
	inv.ProcessedDate = &now
	return s.Service.Update(ctx, inv)
}

// GetByContract finds an invoice by its natural key
func (s *Service) GetByContract(ctx context.Context, contractCode string, seqNo int64) (invoice.Invoice, bool, error) {
	where := shared.And(
		query.Equals(invoice.FieldContractCode, strings.TrimSpace(contractCode)),
		query.Equals(invoice.FieldSeqNo, seqNo),
	)
	items, _, err := s.Store().Find(ctx, query.Criteria[invoice.Invoice]{Where: where, Limit: 1})
	if err != nil || len(items) == 0 {
		return invoice.Invoice{}, false, err
	}
	return items[0], true, nil
}

// Overdue lists unpaid invoices whose end date has passed, oldest end date
// first unless the caller sorts
func (s *Service) Overdue(ctx context.Context, spec query.Spec) (query.PageResult[invoice.Invoice], error) {
	if strings.TrimSpace(spec.SortField) == "" {
		spec.SortField = invoice.FieldEndDate.Name
		spec.SortDescending = false
	}
	return s.ListWhere(ctx, spec, invoice.OverduePredicate(s.now()))
}

// Statistics adds the outstanding value (net of VAT) and the overdue count
// to the generic statistics
func (s *Service) Statistics(ctx context.Context, spec query.Spec, groupBy string) (query.Statistics, error) {
	stats, err := s.Service.Statistics(ctx, spec, groupBy)
	if err != nil {
		return query.Statistics{}, err
	}

	config := s.Config()
	where := config.Predicate(config.Normalize(spec))

	outstanding, err := s.Store().Sum(ctx, shared.And(where, invoice.OutstandingPredicate()), invoice.MetricValue)
	if err != nil {
		return query.Statistics{}, err
	}
	stats.Sums["outstanding"] = outstanding

	_, overdue, err := s.Store().Find(ctx, query.Criteria[invoice.Invoice]{
		Where: shared.And(where, invoice.OverdueCountPredicate(s.now())),
		Limit: 1,
	})
	if err != nil {
		return query.Statistics{}, err
	}
	stats.Indicators = map[string]int64{"overdue": overdue}
	return stats, nil
}

// Lines lists the lines of one invoice
func (s *Service) Lines(ctx context.Context, invoiceID int64, spec query.Spec) (query.PageResult[invoice.Line], error) {
	return s.lines.List(ctx, spec.WithFilter("invoiceId", strconv.FormatInt(invoiceID, 10)))
}

// History lists the notes and audit entries of one invoice, newest first
func (s *Service) History(ctx context.Context, invoiceID int64, spec query.Spec) (query.PageResult[invoice.History], error) {
	return s.history.List(ctx, spec.WithFilter("invoiceId", strconv.FormatInt(invoiceID, 10)))
}

// GetHistory loads one history entry
func (s *Service) GetHistory(ctx context.Context, historyID int64) (invoice.History, bool, error) {
	return s.history.GetByKey(ctx, historyID)
}

// AddHistory attaches a note to an existing invoice. The type defaults to
// a note and the timestamp is set here.
func (s *Service) AddHistory(ctx context.Context, h invoice.History) (invoice.History, error) {
	h.ID = 0
	h.CreatedAt = s.now()
	if strings.TrimSpace(h.Type) == "" {
		h.Type = invoice.HistoryTypeNote
	}

	var created invoice.History
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.Store().Get(ctx, h.InvoiceID); err != nil {
			return err
		}
		var err error
		created, err = s.history.Create(ctx, h)
		return err
	})
	if err != nil {
		return invoice.History{}, err
	}
	logger.Info("Invoice history added",
		zap.Int64("invoice_id", created.InvoiceID),
		zap.Int64("history_id", created.ID),
		zap.String("created_by", created.CreatedBy),
	)
	return created, nil
}

// UpdateHistory replaces the title and content of an entry
func (s *Service) UpdateHistory(ctx context.Context, historyID int64, title, content string) (invoice.History, bool, error) {
	existing, found, err := s.history.GetByKey(ctx, historyID)
	if err != nil || !found {
		return invoice.History{}, found, err
	}
	existing.Title, existing.Content = title, content
	return s.history.Update(ctx, existing)
}

// DeleteHistory removes an entry. false when the entry does not exist or
// belongs to another invoice.
func (s *Service) DeleteHistory(ctx context.Context, invoiceID, historyID int64) (bool, error) {
	existing, found, err := s.history.GetByKey(ctx, historyID)
	if err != nil || !found || existing.InvoiceID != invoiceID {
		return false, err
	}
	return s.history.Delete(ctx, historyID)
}

// recordChange writes the system history entry for an invoice write
func (s *Service) recordChange(ctx context.Context, op crud.Op, before, after invoice.Invoice) error {
	entry := invoice.History{
		Type:      invoice.HistoryTypeSystem,
		CreatedBy: SystemAuthor,
		CreatedAt: s.now(),
	}
	switch op {
	case crud.OpCreate:
		entry.InvoiceID = after.ID
		entry.Title = "Invoice created"
		entry.Content = fmt.Sprintf("Invoice %s/%d created with status %s", after.ContractCode, after.SeqNo, invoice.StatusLabel(after.StatusCode))
	case crud.OpUpdate:
		entry.InvoiceID = after.ID
		entry.Title = "Invoice updated"
		entry.Content = describeUpdate(before, after)
	case crud.OpDelete:
		entry.InvoiceID = before.ID
		entry.Title = "Invoice deleted"
		entry.Content = fmt.Sprintf("Invoice %s/%d deleted", before.ContractCode, before.SeqNo)
	}
	if after.ProcessedBy != "" {
		entry.CreatedBy = after.ProcessedBy
	}
	_, err := s.history.Create(ctx, entry)
	return err
}

func describeUpdate(before, after invoice.Invoice) string {
	var changes []string
	if before.StatusCode != after.StatusCode {
		changes = append(changes, fmt.Sprintf("status %s -> %s", invoice.StatusLabel(before.StatusCode), invoice.StatusLabel(after.StatusCode)))
	}
	if !before.Value.Equal(after.Value) {
		changes = append(changes, fmt.Sprintf("value %s -> %s", before.Value.StringFixed(2), after.Value.StringFixed(2)))
	}
	if !before.Vat.Equal(after.Vat) {
		changes = append(changes, fmt.Sprintf("vat %s -> %s", before.Vat.StringFixed(2), after.Vat.StringFixed(2)))
	}
	if len(changes) == 0 {
		return fmt.Sprintf("Invoice %s/%d updated", after.ContractCode, after.SeqNo)
	}
	return fmt.Sprintf("Invoice %s/%d updated: %s", after.ContractCode, after.SeqNo, strings.Join(changes, ", "))
}

// LineService is the invoice line facade
type LineService struct {
	*crud.Service[invoice.Line, int64]
	uow shared.UnitOfWork
	now func() time.Time
}

// NewLineService creates the invoice line service
func NewLineService(store query.Store[invoice.Line, int64], uow shared.UnitOfWork, opts ...Option) *LineService {
	cfg := newSettings(opts)
	return &LineService{
		Service: crud.NewService(store, invoice.LineConfig, invoice.LineKey, uow,
			crud.WithValidator[invoice.Line, int64](invoice.ValidateLine),
			crud.WithPageSize[invoice.Line, int64](cfg.linePageSize),
		),
		uow: uow,
		now: cfg.now,
	}
}

// UpdateRefund sets the off-hire refund of one line. The amount must not be
// negative or exceed the line charge. found is false for a missing line.
func (s *LineService) UpdateRefund(ctx context.Context, lineID int64, amount decimal.Decimal) (invoice.Line, bool, error) {
	var updated invoice.Line
	found := true
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		line, ok, err := s.GetByKey(ctx, lineID)
		if err != nil {
			return err
		}
		if !ok {
			found = false
			return nil
		}
		if err := invoice.ValidateRefund(line, amount); err != nil {
			return err
		}
		now := s.now()
		line.Refund = amount.Round(2)
		line.ProcessedDate = &now
		updated, found, err = s.Update(ctx, line)
		return err
	})
	if err != nil {
		return invoice.Line{}, false, err
	}
	return updated, found, nil
}
