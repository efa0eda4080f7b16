package stock

import (
	"context"
	"testing"

	"erp/domain/invoice"
	"erp/domain/query"
	"erp/domain/shared"
	"erp/domain/stock"
	"erp/infrastructure/persistence/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) (*Service, *memory.Database) {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDatabase()
	for _, s := range []stock.Stock{
		{No: 10, DivisionNo: 3, Code: "GEN", Name: "Generator", LongName: "Generator 10kVA", Status: "A"},
		{No: 11, DivisionNo: 1, Code: "PMP", Name: "Pump", Status: "A"},
		{No: 12, DivisionNo: 3, Code: "LGT", Name: "Light", Status: "D", Residual: decimal.NewFromInt(5)},
	} {
		_, err := db.Stock.Insert(ctx, s)
		require.NoError(t, err)
	}
	for _, l := range []invoice.Line{
		{InvoiceID: 1, ContractCode: "K1", StockNo: 90, StockName: "Retired Mixer"},
		{InvoiceID: 1, ContractCode: "K1", StockNo: 90, StockName: "Mixer (renamed)"},
		{InvoiceID: 1, ContractCode: "K1", StockNo: 91, StockName: "  "},
	} {
		_, err := db.InvoiceLines.Insert(ctx, l)
		require.NoError(t, err)
	}
	return NewService(db.Stock, db.InvoiceLines, db.UnitOfWork), db
}

func TestDivisions(t *testing.T) {
	svc, _ := seeded(t)

	divisions, err := svc.Divisions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, divisions)
}

// findOnly hides Distinct so the fallback path runs
type findOnly struct {
	query.Store[stock.Stock, int64]
}

func TestDivisionsWithoutDistinct(t *testing.T) {
	_, db := seeded(t)
	svc := NewService(findOnly{db.Stock}, nil, db.UnitOfWork)

	divisions, err := svc.Divisions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, divisions)
}

func TestNamesFallsBackToInvoiceLines(t *testing.T) {
	svc, _ := seeded(t)

	names, err := svc.Names(context.Background(), []int64{10, 11, 90, 91, 99})

	require.NoError(t, err)
	assert.Equal(t, map[int64]string{
		10: "Generator",
		11: "Pump",
		90: "Retired Mixer",
	}, names)
}

func TestNamesWithoutLineSource(t *testing.T) {
	_, db := seeded(t)
	svc := NewService(db.Stock, nil, db.UnitOfWork)

	names, err := svc.Names(context.Background(), []int64{12, 90})

	require.NoError(t, err)
	assert.Equal(t, map[int64]string{12: "Light"}, names)
}

func TestNamesEmptyInput(t *testing.T) {
	svc, _ := seeded(t)

	names, err := svc.Names(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCreateValidates(t *testing.T) {
	svc, _ := seeded(t)

	_, err := svc.Create(context.Background(), stock.Stock{Code: "X"})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
