package bookingapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"erp/domain/booking"
	"erp/domain/query"
	"erp/domain/shared"
)

// remoteQuery holds the filters the booking API understands
type remoteQuery struct {
	search       string
	customerCode string
	status       string
	from         *time.Time
	to           *time.Time
}

// values renders q with a page window. The API orders bookings itself,
// newest first, so sort orders are not sent.
func (q remoteQuery) values(page, pageSize int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("pageSize", strconv.Itoa(pageSize))
	if q.search != "" {
		v.Set("search", q.search)
	}
	if q.customerCode != "" {
		v.Set("customerCode", q.customerCode)
	}
	if q.status != "" {
		v.Set("status", q.status)
	}
	if q.from != nil {
		v.Set("fromDate", q.from.Format(time.DateOnly))
	}
	if q.to != nil {
		v.Set("toDate", q.to.Format(time.DateOnly))
	}
	return v
}

// window converts offset/limit into the API's page numbering
func window(offset, limit int) (page, pageSize int, err error) {
	if limit <= 0 {
		if offset > 0 {
			return 0, 0, unsupported("an unbounded window with an offset")
		}
		return 1, query.MaxPageSize, nil
	}
	if offset%limit != 0 {
		return 0, 0, unsupported("an offset that is not a whole page")
	}
	return offset/limit + 1, limit, nil
}

func unsupported(what string) error {
	return shared.NewValidationError(booking.EntityName, "filter", "the booking API does not support "+what)
}

// translate walks the predicate tree the booking config builds and collects
// the parts the API can express. Anything else is rejected.
func translate(spec shared.Specification[booking.Booking], q *remoteQuery) error {
	switch s := spec.(type) {
	case nil:
		return nil
	case shared.AndSpecification[booking.Booking]:
		if err := translate(s.Left, q); err != nil {
			return err
		}
		return translate(s.Right, q)
	case shared.OrSpecification[booking.Booking]:
		term, ok := searchTerm(s)
		if !ok {
			return unsupported("an OR of filters other than search")
		}
		return setOnce(&q.search, term, "search")
	case query.EqualsSpec[booking.Booking]:
		value, ok := s.Value.(string)
		if !ok {
			return unsupported("equality on " + s.Field.Name)
		}
		switch s.Field.Name {
		case booking.FieldCustomerCode.Name:
			return setOnce(&q.customerCode, value, "customerCode")
		case booking.FieldType.Name:
			return setOnce(&q.status, value, "status")
		}
		return unsupported("a filter on " + s.Field.Name)
	case query.BetweenSpec[booking.Booking]:
		if s.Field.Name != booking.FieldCreateDate.Name {
			return unsupported("a date range on " + s.Field.Name)
		}
		if s.From != nil && (q.from == nil || s.From.After(*q.from)) {
			q.from = s.From
		}
		if s.To != nil && (q.to == nil || s.To.Before(*q.to)) {
			q.to = s.To
		}
		return nil
	}
	return unsupported(fmt.Sprintf("%T", spec))
}

func setOnce(dst *string, value, name string) error {
	value = strings.TrimSpace(value)
	if *dst != "" && !strings.EqualFold(*dst, value) {
		return unsupported("two values for " + name)
	}
	*dst = value
	return nil
}

// searchTerm recovers the free-text term from the OR built by
// EntityConfig.SearchPredicate: substring leaves plus an exact match on the
// booking number when the term is numeric.
func searchTerm(spec shared.Specification[booking.Booking]) (string, bool) {
	var text string
	var numbers []int64
	var walk func(shared.Specification[booking.Booking]) bool
	walk = func(s shared.Specification[booking.Booking]) bool {
		switch s := s.(type) {
		case shared.OrSpecification[booking.Booking]:
			return walk(s.Left) && walk(s.Right)
		case query.ContainsSpec[booking.Booking]:
			term := strings.TrimSpace(s.Term)
			if text != "" && !strings.EqualFold(text, term) {
				return false
			}
			text = term
			return true
		case query.EqualsSpec[booking.Booking]:
			n, ok := s.Value.(int64)
			if ok {
				numbers = append(numbers, n)
			}
			return ok
		}
		return false
	}
	if !walk(spec) {
		return "", false
	}

	if text == "" {
		if len(numbers) != 1 {
			return "", false
		}
		return strconv.FormatInt(numbers[0], 10), true
	}
	for _, n := range numbers {
		if parsed, err := strconv.ParseInt(text, 10, 64); err != nil || parsed != n {
			return "", false
		}
	}
	return text, true
}
