package bookingapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"erp/domain/booking"

	"github.com/shopspring/decimal"
)

// wireTime reads the booking API's timestamps, which may omit the zone
type wireTime struct {
	time.Time
}

var wireLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.9999999", "2006-01-02T15:04:05", time.DateOnly}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range wireLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("bookingapi: unrecognised timestamp %q", raw)
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t wireTime) ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

func timeOf(p *time.Time) wireTime {
	if p == nil {
		return wireTime{}
	}
	return wireTime{Time: *p}
}

// wireBooking is a booking as the remote API serializes it
type wireBooking struct {
	BookingNo         int64           `json:"bookingNo"`
	BookingTypeCode   string          `json:"bookingTypeCode"`
	WebsiteNo         int64           `json:"websiteNo"`
	BookingCreateDate wireTime        `json:"bookingCreateDate"`
	BookingExpiryDate wireTime        `json:"bookingExpiryDate"`
	CustomerCode      string          `json:"customerCode"`
	BookingOrder      string          `json:"bookingOrder"`
	BookingContact    string          `json:"bookingContact"`
	BookingTel        string          `json:"bookingTel"`
	BookingEmail      string          `json:"bookingEmail"`
	BookingCharge     decimal.Decimal `json:"bookingCharge"`
	BookingVat        decimal.Decimal `json:"bookingVat"`
	BookingSourceCode string          `json:"bookingSourceCode"`
	BookingNotes      string          `json:"bookingNotes"`
	BookingCaptured   decimal.Decimal `json:"bookingCaptured"`
	BookingRefunded   decimal.Decimal `json:"bookingRefunded"`
}

func fromDomain(b booking.Booking) wireBooking {
	return wireBooking{
		BookingNo:         b.No,
		BookingTypeCode:   b.TypeCode,
		WebsiteNo:         b.WebsiteNo,
		BookingCreateDate: timeOf(b.CreateDate),
		BookingExpiryDate: timeOf(b.ExpiryDate),
		CustomerCode:      b.CustomerCode,
		BookingOrder:      b.OrderRef,
		BookingContact:    b.Contact,
		BookingTel:        b.Telephone,
		BookingEmail:      b.Email,
		BookingCharge:     b.Charge,
		BookingVat:        b.Vat,
		BookingSourceCode: b.SourceCode,
		BookingNotes:      b.Notes,
		BookingCaptured:   b.Captured,
		BookingRefunded:   b.Refunded,
	}
}

func (w wireBooking) toDomain() booking.Booking {
	return booking.Booking{
		No:           w.BookingNo,
		TypeCode:     strings.TrimSpace(w.BookingTypeCode),
		WebsiteNo:    w.WebsiteNo,
		CreateDate:   w.BookingCreateDate.ptr(),
		ExpiryDate:   w.BookingExpiryDate.ptr(),
		CustomerCode: strings.TrimSpace(w.CustomerCode),
		OrderRef:     w.BookingOrder,
		Contact:      w.BookingContact,
		Telephone:    w.BookingTel,
		Email:        w.BookingEmail,
		Charge:       w.BookingCharge,
		Vat:          w.BookingVat,
		SourceCode:   strings.TrimSpace(w.BookingSourceCode),
		Notes:        w.BookingNotes,
		Captured:     w.BookingCaptured,
		Refunded:     w.BookingRefunded,
	}
}

type listResponse struct {
	Bookings   []wireBooking `json:"bookings"`
	Pagination *struct {
		CurrentPage int   `json:"currentPage"`
		TotalPages  int   `json:"totalPages"`
		TotalCount  int64 `json:"totalCount"`
		PageSize    int   `json:"pageSize"`
	} `json:"pagination"`
}

type amountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}
