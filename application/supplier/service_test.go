package supplier

import (
	"context"
	"testing"

	"erp/domain/query"
	"erp/domain/shared"
	"erp/domain/supplier"
	"erp/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, rows ...supplier.Supplier) *Service {
	t.Helper()
	db := memory.NewDatabase()
	for _, s := range rows {
		_, err := db.Suppliers.Insert(context.Background(), s)
		require.NoError(t, err)
	}
	return NewService(db.Suppliers, db.UnitOfWork)
}

func names(items []supplier.Supplier) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Name)
	}
	return out
}

func TestListIsOrderedByName(t *testing.T) {
	svc := newService(t,
		supplier.Supplier{Name: "NEBOSH", Status: "A"},
		supplier.Supplier{Name: "CITB"},
		supplier.Supplier{Name: "IPAF", Status: "I"},
	)

	page, err := svc.List(context.Background(), query.Spec{})

	require.NoError(t, err)
	assert.Equal(t, []string{"CITB", "IPAF", "NEBOSH"}, names(page.Items))
	assert.Equal(t, supplier.DefaultPageSize, page.PageSize)
}

func TestActiveTreatsBlankStatusAsActive(t *testing.T) {
	svc := newService(t,
		supplier.Supplier{Name: "NEBOSH", Status: "A"},
		supplier.Supplier{Name: "CITB"},
		supplier.Supplier{Name: "IPAF", Status: "I"},
		supplier.Supplier{Name: "City & Guilds", Status: "1"},
	)

	page, err := svc.Active(context.Background(), query.Spec{})

	require.NoError(t, err)
	assert.Equal(t, []string{"CITB", "City & Guilds", "NEBOSH"}, names(page.Items))
	assert.Equal(t, int64(3), page.TotalCount)
}

func TestSearchMatchesWebsite(t *testing.T) {
	svc := newService(t,
		supplier.Supplier{Name: "NEBOSH", Website: "https://www.nebosh.org.uk"},
		supplier.Supplier{Name: "CITB", Website: "https://www.citb.co.uk"},
	)

	page, err := svc.Search(context.Background(), "NEBOSH.ORG", query.Spec{})

	require.NoError(t, err)
	assert.Equal(t, []string{"NEBOSH"}, names(page.Items))
}

func TestCreateValidates(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, supplier.Supplier{Name: "  "})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Create(ctx, supplier.Supplier{Name: "IOSH", Status: "AI"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	created, err := svc.Create(ctx, supplier.Supplier{Name: "IOSH"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.No)
	assert.True(t, created.IsActive())
}

func TestStatisticsByStatus(t *testing.T) {
	svc := newService(t,
		supplier.Supplier{Name: "NEBOSH", Status: "A"},
		supplier.Supplier{Name: "CITB"},
		supplier.Supplier{Name: "IPAF", Status: "I"},
	)

	stats, err := svc.Statistics(context.Background(), query.Spec{}, "")

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, map[string]int64{"A": 1, "": 1, "I": 1}, stats.Counts)
}
