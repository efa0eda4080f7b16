package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"erp/domain/booking"
	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records the requests it receives and serves canned bookings
type fakeAPI struct {
	mu       sync.Mutex
	queries  []url.Values
	auth     string
	created  map[string]any
	bookings []map[string]any
	status   int
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.queries = append(f.queries, r.URL.Query())
		f.auth = r.Header.Get("Authorization")
		f.mu.Unlock()
		if f.status != 0 {
			http.Error(w, `{"message":"backend down"}`, f.status)
			return
		}
		writeJSON(w, map[string]any{
			"bookings":   f.bookings,
			"pagination": map[string]any{"totalCount": len(f.bookings)},
		})
	})
	mux.HandleFunc("GET /api/bookings/{no}", func(w http.ResponseWriter, r *http.Request) {
		for _, b := range f.bookings {
			if r.PathValue("no") == jsonString(b["bookingNo"]) {
				writeJSON(w, b)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.created = body
		f.mu.Unlock()
		body["bookingNo"] = 900
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, body)
	})
	mux.HandleFunc("DELETE /api/bookings/{no}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /api/bookings/statistics/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]int{"C": 4, "P": 1})
	})
	mux.HandleFunc("GET /api/bookings/statistics/captured-amount", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"amount": 250.5})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonString(v any) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}

func (f *fakeAPI) lastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return nil
	}
	return f.queries[len(f.queries)-1]
}

func newStore(t *testing.T, api *fakeAPI) *Store {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	store, err := New(Config{BaseURL: srv.URL, APIKey: "secret", Timeout: time.Second}, nil)
	require.NoError(t, err)
	return store
}

func sampleBookings() []map[string]any {
	return []map[string]any{
		{"bookingNo": 7, "bookingTypeCode": "C", "customerCode": "ACME", "bookingCreateDate": "2024-03-01T10:00:00", "bookingCharge": 100, "bookingVat": 20},
		{"bookingNo": 8, "bookingTypeCode": "P", "customerCode": "ACME", "bookingSourceCode": "W", "bookingCharge": 50, "bookingCaptured": 50},
	}
}

func find(t *testing.T, store *Store, spec query.Spec) ([]booking.Booking, int64, error) {
	t.Helper()
	spec = booking.Config.Normalize(spec)
	return store.Find(context.Background(), booking.Config.Criteria(spec))
}

func TestFindSendsFiltersAndPage(t *testing.T) {
	api := &fakeAPI{bookings: sampleBookings()}
	store := newStore(t, api)

	items, total, err := find(t, store, query.Spec{
		Page:       3,
		PageSize:   20,
		SearchTerm: "acme",
		Filters: map[string]string{
			"customerCode": "ACME",
			"status":       "C",
			"from":         "2024-01-01",
			"to":           "2024-01-31",
		},
	})
	require.NoError(t, err)

	q := api.lastQuery()
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "20", q.Get("pageSize"))
	assert.Equal(t, "acme", q.Get("search"))
	assert.Equal(t, "ACME", q.Get("customerCode"))
	assert.Equal(t, "C", q.Get("status"))
	assert.Equal(t, "2024-01-01", q.Get("fromDate"))
	assert.Equal(t, "2024-01-31", q.Get("toDate"))
	assert.Equal(t, "Bearer secret", api.auth)

	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(7), items[0].No)
	require.NotNil(t, items[0].CreateDate)
	assert.Equal(t, 2024, items[0].CreateDate.Year())
	assert.Equal(t, "120", items[0].Total().String())
	assert.Nil(t, items[1].CreateDate)
}

func TestFindNumericSearch(t *testing.T) {
	api := &fakeAPI{}
	store := newStore(t, api)

	_, _, err := find(t, store, query.Spec{SearchTerm: "12"})
	require.NoError(t, err)

	assert.Equal(t, "12", api.lastQuery().Get("search"))
	assert.Equal(t, "1", api.lastQuery().Get("page"))
	assert.Equal(t, "20", api.lastQuery().Get("pageSize"))
}

func TestFindRejectsFiltersTheAPICannotApply(t *testing.T) {
	api := &fakeAPI{}
	store := newStore(t, api)

	_, _, err := find(t, store, query.Spec{Filters: map[string]string{"source": "W"}})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Nil(t, api.lastQuery())
}

func TestServerFailureIsTransient(t *testing.T) {
	api := &fakeAPI{status: http.StatusServiceUnavailable}
	store := newStore(t, api)

	_, _, err := find(t, store, query.Spec{})
	assert.ErrorIs(t, err, shared.ErrTransient)
	assert.Contains(t, err.Error(), "backend down")
}

func TestUnreachableAPIIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	store, err := New(Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, shared.ErrTransient)
}

func TestGetAndDeleteMissing(t *testing.T) {
	api := &fakeAPI{bookings: sampleBookings()}
	store := newStore(t, api)
	ctx := context.Background()

	got, err := store.Get(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, "W", got.SourceCode)
	assert.Equal(t, "50", got.Captured.String())

	_, err = store.Get(ctx, 99)
	assert.True(t, shared.IsNotFound(err))

	err = store.Delete(ctx, 99)
	assert.True(t, shared.IsNotFound(err))
}

func TestInsertPostsBooking(t *testing.T) {
	api := &fakeAPI{}
	store := newStore(t, api)

	created, err := store.Insert(context.Background(), booking.Booking{CustomerCode: "ACME", TypeCode: booking.TypeDraft, Charge: decimal.NewFromInt(75)})
	require.NoError(t, err)

	assert.Equal(t, int64(900), created.No)
	assert.Equal(t, "ACME", created.CustomerCode)
	assert.Equal(t, "ACME", api.created["customerCode"])
	assert.Equal(t, "D", api.created["bookingTypeCode"])
	assert.Nil(t, api.created["bookingCreateDate"])
}

func TestAggregatesUseStatisticsEndpointsUnfiltered(t *testing.T) {
	api := &fakeAPI{bookings: sampleBookings()}
	store := newStore(t, api)
	ctx := context.Background()

	counts, err := store.CountBy(ctx, nil, booking.FieldType)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"C": 4, "P": 1}, counts)

	captured, err := store.Sum(ctx, nil, booking.MetricCaptured)
	require.NoError(t, err)
	assert.Equal(t, "250.5", captured.String())
	assert.Nil(t, api.lastQuery())
}

func TestFilteredAggregatesPageThroughMatches(t *testing.T) {
	api := &fakeAPI{bookings: sampleBookings()}
	store := newStore(t, api)
	ctx := context.Background()
	where := query.Equals(booking.FieldCustomerCode, "ACME")

	counts, err := store.CountBy(ctx, where, booking.FieldType)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"C": 1, "P": 1}, counts)

	total, err := store.Sum(ctx, where, booking.MetricTotal)
	require.NoError(t, err)
	assert.Equal(t, "170", total.String())

	assert.Equal(t, "ACME", api.lastQuery().Get("customerCode"))
	assert.Equal(t, "1000", api.lastQuery().Get("pageSize"))
}

func TestWindow(t *testing.T) {
	page, size, err := window(40, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, size)

	_, _, err = window(5, 20)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	page, size, err = window(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, query.MaxPageSize, size)
}
