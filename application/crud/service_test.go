package crud

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"erp/domain/customer"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/infrastructure/persistence/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type customerService = Service[customer.Customer, string]

func newCustomerService(t *testing.T, rows []customer.Customer, opts ...Option[customer.Customer, string]) (*customerService, *memory.Collection[customer.Customer, string]) {
	t.Helper()
	store := memory.NewCollection(customer.EntityName, customer.Key, memory.WithSeed[customer.Customer, string](rows...))
	uow := memory.NewUnitOfWork(store)
	opts = append([]Option[customer.Customer, string]{WithValidator[customer.Customer, string](customer.Validate)}, opts...)
	return NewService(store, customer.Config, customer.Key, uow, opts...), store
}

func numbered(n int) []customer.Customer {
	rows := make([]customer.Customer, 0, n)
	for i := 1; i <= n; i++ {
		status := "ACTIVE"
		if i%3 == 0 {
			status = "HOLD"
		}
		rows = append(rows, customer.Customer{Code: fmt.Sprintf("CUST%03d", i), Name: fmt.Sprintf("Customer %d", i), StatusCode: status})
	}
	return rows
}

func codesOf(items []customer.Customer) []string {
	codes := make([]string, 0, len(items))
	for _, c := range items {
		codes = append(codes, c.Code)
	}
	return codes
}

func TestListPageBoundsAndRepeatability(t *testing.T) {
	svc, _ := newCustomerService(t, numbered(60))
	ctx := context.Background()

	first, err := svc.List(ctx, query.Spec{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Len(t, first.Items, 50)
	assert.Equal(t, int64(60), first.TotalCount)
	assert.Equal(t, 2, first.TotalPages())

	again, err := svc.List(ctx, query.Spec{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestListCoercesOutOfRangePaging(t *testing.T) {
	svc, _ := newCustomerService(t, numbered(60))
	ctx := context.Background()

	tests := []query.Spec{
		{Page: 0, PageSize: 0},
		{Page: -3, PageSize: -1},
		{Page: 1, PageSize: 1500},
	}
	for _, spec := range tests {
		t.Run(fmt.Sprintf("page=%d size=%d", spec.Page, spec.PageSize), func(t *testing.T) {
			result, err := svc.List(ctx, spec)
			require.NoError(t, err)
			assert.Equal(t, 1, result.Page)
			assert.Equal(t, customer.DefaultPageSize, result.PageSize)
			assert.Len(t, result.Items, customer.DefaultPageSize)
		})
	}
}

func TestListPastLastPageIsEmpty(t *testing.T) {
	svc, _ := newCustomerService(t, numbered(10))

	result, err := svc.List(context.Background(), query.Spec{Page: 9, PageSize: 5})

	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(10), result.TotalCount)
}

func TestWithPageSizeOverridesDefault(t *testing.T) {
	svc, _ := newCustomerService(t, numbered(30), WithPageSize[customer.Customer, string](20))

	result, err := svc.List(context.Background(), query.Spec{})

	require.NoError(t, err)
	assert.Len(t, result.Items, 20)
}

func TestSearchTermOverridesSpec(t *testing.T) {
	svc, _ := newCustomerService(t, []customer.Customer{
		{Code: "C1", Name: "Test Customer 1"},
		{Code: "C2", Name: "Test Customer 2"},
		{Code: "C3", Name: "Different Customer"},
		{Code: "C4", Name: "ACME Corporation"},
	})

	result, err := svc.Search(context.Background(), "TEST", query.Spec{SearchTerm: "acme"})

	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "C2"}, codesOf(result.Items))
}

func TestStatisticsCountsSumToTotal(t *testing.T) {
	svc, _ := newCustomerService(t, numbered(30))
	ctx := context.Background()

	stats, err := svc.Statistics(ctx, query.Spec{Page: 3, PageSize: 2}, "")
	require.NoError(t, err)

	assert.Equal(t, int64(30), stats.Total)
	assert.Equal(t, "status", stats.GroupBy)
	var sum int64
	for _, n := range stats.Counts {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
	assert.Equal(t, int64(10), stats.Counts["HOLD"])
}

func TestStatisticsRespectsFiltersAndUnknownGroup(t *testing.T) {
	svc, _ := newCustomerService(t, numbered(30))

	stats, err := svc.Statistics(context.Background(), query.Spec{Filters: map[string]string{"status": "HOLD"}}, "nonsense")

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, "status", stats.GroupBy)
	assert.Equal(t, map[string]int64{"HOLD": 10}, stats.Counts)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc, _ := newCustomerService(t, nil)
	ctx := context.Background()
	input := customer.Customer{Code: "NEW01", Name: "New Customer", Town: "Leeds", VatFlag: shared.FlagTrue}

	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	got, found, err := svc.GetByKey(ctx, "NEW01")
	require.NoError(t, err)

	assert.True(t, found)
	assert.Equal(t, input, created)
	assert.Equal(t, input, got)
}

func TestCreateRejectsInvalidAndDuplicate(t *testing.T) {
	svc, _ := newCustomerService(t, []customer.Customer{{Code: "C1", Name: "One"}})
	ctx := context.Background()

	_, err := svc.Create(ctx, customer.Customer{Code: "", Name: "No code"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Create(ctx, customer.Customer{Code: "C1", Name: "Duplicate"})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestGetMissingIsNotAnError(t *testing.T) {
	svc, _ := newCustomerService(t, nil)

	_, found, err := svc.GetByKey(context.Background(), "NOPE")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdate(t *testing.T) {
	svc, _ := newCustomerService(t, []customer.Customer{{Code: "C1", Name: "One"}})
	ctx := context.Background()

	updated, found, err := svc.Update(ctx, customer.Customer{Code: "C1", Name: "Uno"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Uno", updated.Name)

	_, found, err = svc.Update(ctx, customer.Customer{Code: "C2", Name: "Missing"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _ := newCustomerService(t, []customer.Customer{{Code: "C1", Name: "One"}})
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, "C1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestHookFailureRollsBackWrite(t *testing.T) {
	var seen []Op
	boom := errors.New("audit failed")
	hook := func(ctx context.Context, op Op, before, after customer.Customer) error {
		seen = append(seen, op)
		if op == OpDelete {
			return boom
		}
		return nil
	}
	svc, store := newCustomerService(t, nil, WithAfterWrite[customer.Customer, string](hook))
	ctx := context.Background()

	_, err := svc.Create(ctx, customer.Customer{Code: "C1", Name: "One"})
	require.NoError(t, err)
	_, _, err = svc.Update(ctx, customer.Customer{Code: "C1", Name: "Uno"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "C1")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []Op{OpCreate, OpUpdate, OpDelete}, seen)
}

// failingStore returns err from every call
type failingStore struct {
	err error
}

func (f failingStore) Find(context.Context, query.Criteria[customer.Customer]) ([]customer.Customer, int64, error) {
	return nil, 0, f.err
}

func (f failingStore) CountBy(context.Context, shared.Specification[customer.Customer], query.Field[customer.Customer]) (map[string]int64, error) {
	return nil, f.err
}

func (f failingStore) Sum(context.Context, shared.Specification[customer.Customer], query.Metric[customer.Customer]) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f failingStore) Get(context.Context, string) (customer.Customer, error) {
	return customer.Customer{}, f.err
}

func (f failingStore) Insert(context.Context, customer.Customer) (customer.Customer, error) {
	return customer.Customer{}, f.err
}

func (f failingStore) Update(context.Context, customer.Customer) error { return f.err }

func (f failingStore) Delete(context.Context, string) error { return f.err }

func TestTransientFailureIsLoggedOnceAndReturned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	transient := shared.NewTransientError(customer.EntityName, errors.New("connection refused"))
	svc := NewService[customer.Customer, string](failingStore{err: transient}, customer.Config, customer.Key,
		memory.NewUnitOfWork(), WithLogger[customer.Customer, string](zap.New(core)))

	_, err := svc.List(context.Background(), query.Spec{})

	assert.ErrorIs(t, err, shared.ErrTransient)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Store unavailable", entry.Message)
	assert.Equal(t, "customer", entry.ContextMap()["entity"])
	assert.Equal(t, "list", entry.ContextMap()["op"])
}

func TestNonTransientFailureIsNotLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	plain := errors.New("syntax error")
	svc := NewService[customer.Customer, string](failingStore{err: plain}, customer.Config, customer.Key,
		memory.NewUnitOfWork(), WithLogger[customer.Customer, string](zap.New(core)))

	_, _, err := svc.GetByKey(context.Background(), "C1")

	assert.ErrorIs(t, err, plain)
	assert.Zero(t, logs.Len())
}
