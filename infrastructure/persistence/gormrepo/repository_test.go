package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"erp/domain/booking"
	"erp/domain/course"
	"erp/domain/customer"
	"erp/domain/invoice"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/domain/stock"
	"erp/domain/supplier"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := Config{Driver: DriverSQLite, DSN: ":memory:", LogLevel: "silent"}
	db, err := cfg.Connect()
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func seedCustomers(t *testing.T, repo *CustomerRepository, rows ...customer.Customer) {
	t.Helper()
	for _, c := range rows {
		_, err := repo.Insert(context.Background(), c)
		require.NoError(t, err)
	}
}

func numbered(n int) []customer.Customer {
	rows := make([]customer.Customer, 0, n)
	for i := n; i >= 1; i-- {
		rows = append(rows, customer.Customer{Code: fmt.Sprintf("CUST%03d", i), Name: fmt.Sprintf("Customer %d", i)})
	}
	return rows
}

func customerPage(t *testing.T, repo *CustomerRepository, spec query.Spec) ([]string, int64) {
	t.Helper()
	spec = customer.Config.Normalize(spec)
	items, total, err := repo.Find(context.Background(), customer.Config.Criteria(spec))
	require.NoError(t, err)
	codes := make([]string, 0, len(items))
	for _, c := range items {
		codes = append(codes, c.Code)
	}
	return codes, total
}

func TestRepositoryFirstPage(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo, numbered(60)...)

	codes, total := customerPage(t, repo, query.Spec{Page: 1, PageSize: 50})

	assert.Equal(t, int64(60), total)
	require.Len(t, codes, 50)
	assert.Equal(t, "CUST001", codes[0])
	assert.Equal(t, "CUST050", codes[49])
}

func TestRepositorySecondPage(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo, numbered(50)...)

	codes, total := customerPage(t, repo, query.Spec{Page: 2, PageSize: 15})

	assert.Equal(t, int64(50), total)
	require.Len(t, codes, 15)
	assert.Equal(t, "CUST016", codes[0])
	assert.Equal(t, "CUST030", codes[14])
}

func TestRepositoryOversizedPageFallsBackToDefault(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo, numbered(60)...)

	oversized, _ := customerPage(t, repo, query.Spec{Page: 1, PageSize: 1500})
	standard, _ := customerPage(t, repo, query.Spec{Page: 1, PageSize: 50})

	assert.Equal(t, standard, oversized)
}

func TestRepositoryPagePastEndIsEmpty(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo, numbered(10)...)

	codes, total := customerPage(t, repo, query.Spec{Page: 5, PageSize: 10})

	assert.Empty(t, codes)
	assert.Equal(t, int64(10), total)
}

func TestRepositoryHugePageIsEmpty(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo, numbered(60)...)

	codes, total := customerPage(t, repo, query.Spec{Page: math.MaxInt/50 + 2, PageSize: 50})

	assert.Empty(t, codes)
	assert.Equal(t, int64(60), total)
}

func TestRepositorySearchIsCaseInsensitive(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo,
		customer.Customer{Code: "C1", Name: "Test Customer 1"},
		customer.Customer{Code: "C2", Name: "Test Customer 2"},
		customer.Customer{Code: "C3", Name: "Different Customer"},
		customer.Customer{Code: "C4", Name: "ACME Corporation"},
	)

	codes, total := customerPage(t, repo, query.Spec{SearchTerm: "test"})

	assert.Equal(t, []string{"C1", "C2"}, codes)
	assert.Equal(t, int64(2), total)
}

func TestRepositorySearchEscapesWildcards(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo,
		customer.Customer{Code: "C1", Name: "100% Cotton"},
		customer.Customer{Code: "C2", Name: "1000 Widgets"},
	)

	codes, _ := customerPage(t, repo, query.Spec{SearchTerm: "100%"})

	assert.Equal(t, []string{"C1"}, codes)
}

func TestRepositoryDigitLetterBucket(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo,
		customer.Customer{Code: "ACME001", Name: "ACME Ltd"},
		customer.Customer{Code: "ALPHA002", Name: "Alpha Ltd"},
		customer.Customer{Code: "BETA003", Name: "Beta Ltd"},
		customer.Customer{Code: "123CORP", Name: "Numbered Corp"},
	)

	digits, _ := customerPage(t, repo, query.Spec{Filters: map[string]string{"letter": "0-9"}})
	letterA, _ := customerPage(t, repo, query.Spec{Filters: map[string]string{"letter": "a"}})

	assert.Equal(t, []string{"123CORP"}, digits)
	assert.Equal(t, []string{"ACME001", "ALPHA002"}, letterA)
}

func TestRepositoryCountByMatchesTotal(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo,
		customer.Customer{Code: "A", Name: "A", StatusCode: "ACTIVE"},
		customer.Customer{Code: "B", Name: "B", StatusCode: "ACTIVE"},
		customer.Customer{Code: "C", Name: "C", StatusCode: "HOLD"},
		customer.Customer{Code: "D", Name: "D"},
	)

	counts, err := repo.CountBy(ctx, nil, customer.FieldStatus)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"ACTIVE": 2, "HOLD": 1, "": 1}, counts)
	var sum int64
	for _, n := range counts {
		sum += n
	}
	assert.Equal(t, int64(4), sum)
}

func TestRepositorySum(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(newTestDB(t))
	for i, value := range []string{"100.10", "200.20", "0.05"} {
		_, err := repo.Insert(ctx, invoice.Invoice{
			ContractCode: "K1",
			SeqNo:        int64(i + 1),
			CustomerCode: "CUST001",
			StatusCode:   invoice.StatusSent,
			Value:        decimal.RequireFromString(value),
			Vat:          decimal.RequireFromString("1.00"),
		})
		require.NoError(t, err)
	}

	total, err := repo.Sum(ctx, nil, invoice.MetricTotal)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("303.35").Equal(total), total.String())

	none, err := repo.Sum(ctx, query.Equals(invoice.FieldStatus, invoice.StatusPaid), invoice.MetricValue)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestRepositoryInsertAssignsKeyAndRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(newTestDB(t))

	created, err := repo.Insert(ctx, invoice.Invoice{ContractCode: "K1", SeqNo: 1, CustomerCode: "C"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	_, err = repo.Insert(ctx, invoice.Invoice{ContractCode: "K1", SeqNo: 1, CustomerCode: "C"})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestRepositoryGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))
	seedCustomers(t, repo, customer.Customer{Code: "C1", Name: "Before", VatFlag: shared.FlagTrue})

	got, err := repo.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Before", got.Name)
	assert.Equal(t, shared.FlagTrue, got.VatFlag)
	assert.Equal(t, shared.FlagUnknown, got.ContactFlag)

	got.Name = "After"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)

	// an update that changes nothing still finds the row
	require.NoError(t, repo.Update(ctx, got))

	err = repo.Update(ctx, customer.Customer{Code: "NOPE", Name: "x"})
	assert.True(t, shared.IsNotFound(err))

	require.NoError(t, repo.Delete(ctx, "C1"))
	assert.True(t, shared.IsNotFound(repo.Delete(ctx, "C1")))
	_, err = repo.Get(ctx, "C1")
	assert.True(t, shared.IsNotFound(err))
}

func TestRepositoryCompositeKey(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingLineRepository(newTestDB(t))
	for _, l := range []booking.Line{
		{BookingNo: 7, LineNo: 1, Quantity: 2, Price: decimal.NewFromInt(10), Type: booking.LineTypeHire},
		{BookingNo: 7, LineNo: 2, Quantity: 1, Price: decimal.NewFromInt(5), Type: booking.LineTypeSale},
		{BookingNo: 8, LineNo: 1, Quantity: 3, Price: decimal.NewFromInt(1), Type: booking.LineTypeHire},
	} {
		_, err := repo.Insert(ctx, l)
		require.NoError(t, err)
	}

	line, err := repo.Get(ctx, booking.LineKey{BookingNo: 7, LineNo: 2})
	require.NoError(t, err)
	assert.Equal(t, booking.LineTypeSale, line.Type)

	require.NoError(t, repo.Delete(ctx, booking.LineKey{BookingNo: 7, LineNo: 1}))
	_, err = repo.Get(ctx, booking.LineKey{BookingNo: 8, LineNo: 1})
	require.NoError(t, err, "deleting one line must leave other bookings untouched")

	value, err := repo.Sum(ctx, query.Equals(booking.LineFieldBookingNo, int64(7)), booking.LineMetricValue)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(value), value.String())
}

func TestRepositoryDistinct(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepository(newTestDB(t))
	for _, s := range []stock.Stock{
		{Code: "S1", Name: "Drill", DivisionNo: 3},
		{Code: "S2", Name: "Saw", DivisionNo: 1},
		{Code: "S3", Name: "Ladder", DivisionNo: 3},
	} {
		_, err := repo.Insert(ctx, s)
		require.NoError(t, err)
	}

	divisions, err := repo.Distinct(ctx, nil, stock.FieldDivision)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, divisions)
}

func TestRepositoryNegatedSetFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewSupplierRepository(newTestDB(t))
	for _, s := range []supplier.Supplier{
		{Name: "NEBOSH", Status: "A"},
		{Name: "CITB"},
		{Name: "IPAF", Status: "I"},
		{Name: "City & Guilds", Status: "1"},
	} {
		_, err := repo.Insert(ctx, s)
		require.NoError(t, err)
	}

	names := func(active string) []string {
		spec := supplier.Config.Normalize(query.Spec{Filters: map[string]string{"active": active}})
		items, _, err := repo.Find(ctx, supplier.Config.Criteria(spec))
		require.NoError(t, err)
		out := make([]string, 0, len(items))
		for _, s := range items {
			out = append(out, s.Name)
		}
		return out
	}

	assert.Equal(t, []string{"CITB", "City & Guilds", "NEBOSH"}, names("true"))
	assert.Equal(t, []string{"IPAF"}, names("N"))
}

func TestRepositoryEqualityIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := NewSupplierRepository(newTestDB(t))
	for _, s := range []supplier.Supplier{{Name: "NEBOSH", Status: "A"}, {Name: "IPAF", Status: "I"}} {
		_, err := repo.Insert(ctx, s)
		require.NoError(t, err)
	}

	spec := supplier.Config.Normalize(query.Spec{Filters: map[string]string{"status": "a"}})
	items, total, err := repo.Find(ctx, supplier.Config.Criteria(spec))

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "NEBOSH", items[0].Name)
}

func TestRepositoryJoinsUnitOfWork(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCustomerRepository(db)
	uow := NewUnitOfWork(db)

	boom := errors.New("boom")
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := repo.Insert(ctx, customer.Customer{Code: "TX1", Name: "rolled back"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, err = repo.Get(ctx, "TX1")
	assert.True(t, shared.IsNotFound(err))

	err = uow.Execute(ctx, func(ctx context.Context) error {
		_, err := repo.Insert(ctx, customer.Customer{Code: "TX2", Name: "committed"})
		return err
	})
	require.NoError(t, err)
	_, err = repo.Get(ctx, "TX2")
	assert.NoError(t, err)
}

func TestCourseLookups(t *testing.T) {
	ctx := context.Background()
	lookups := NewCourseLookupRepository(newTestDB(t))

	require.NoError(t, lookups.SaveType(ctx, course.Type{Code: "O", Name: "Online", Status: "A"}))
	require.NoError(t, lookups.SaveType(ctx, course.Type{Code: "C", Name: "Classroom", Status: "A"}))
	require.NoError(t, lookups.SaveType(ctx, course.Type{Code: "C", Name: "Classroom", Status: "I"}))
	require.NoError(t, lookups.SaveCategory(ctx, course.Category{Name: "Safety", Status: "A"}))

	types, err := lookups.Types(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Classroom", types[0].Name)
	assert.Equal(t, "I", types[0].Status)

	categories, err := lookups.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Positive(t, categories[0].No)
}
