package reports

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEffectiveTime_FallbackChain(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, loc)
	stored := time.Date(2024, 3, 10, 18, 0, 0, 0, loc)
	created := time.Date(2024, 3, 9, 12, 0, 0, 0, loc)

	tests := []struct {
		name      string
		date      any
		createdAt any
		want      time.Time
	}{
		{
			name: "native timestamp",
			date: stored,
			want: stored,
		},
		{
			name: "driver datetime",
			date: primitive.NewDateTimeFromTime(stored),
			want: stored,
		},
		{
			name: "date-only string",
			date: "2024-03-10",
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name: "rfc3339 string",
			date: "2024-03-10T18:00:00Z",
			want: stored,
		},
		{
			name:      "missing date falls back to created_at",
			date:      nil,
			createdAt: created,
			want:      created,
		},
		{
			name:      "garbage date falls back to created_at",
			date:      "not a date",
			createdAt: created,
			want:      created,
		},
		{
			name: "nothing usable falls back to now",
			want: now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := effectiveTime(tt.date, tt.createdAt, loc, now)
			if !got.Equal(tt.want) {
				t.Errorf("effectiveTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlotHour(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "evening slot", in: "18:30", want: 18},
		{name: "midnight slot", in: "00:00", want: 0},
		{name: "missing", in: nil, want: 12},
		{name: "not a string", in: 1830, want: 12},
		{name: "no separator", in: "1830", want: 12},
		{name: "non-numeric hour", in: "ab:30", want: 12},
		{name: "hour out of range", in: "25:00", want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slotHour(tt.in, 12); got != tt.want {
				t.Errorf("slotHour(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmountValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{name: "long", in: int64(1500), want: 1500},
		{name: "int32", in: int32(900), want: 900},
		{name: "double", in: float64(1200), want: 1200},
		{name: "missing", in: nil, want: 0},
		{name: "string amount", in: "1500", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := amountValue(tt.in); got != tt.want {
				t.Errorf("amountValue(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeBooking_MalformedDocument(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, loc)

	// Everything about this record is wrong except the venue reference.
	doc := bson.M{
		"venue_id":  "v1",
		"date":      "someday",
		"time_slot": "soon",
		"amount":    "free",
	}

	b := normalizeBooking(doc, loc, 12, now)

	if b.VenueID != "v1" {
		t.Errorf("expected venue v1, got %q", b.VenueID)
	}
	if !b.EffectiveTime.Equal(now) {
		t.Errorf("expected now fallback, got %v", b.EffectiveTime)
	}
	if b.SlotHour != 12 {
		t.Errorf("expected default slot hour 12, got %d", b.SlotHour)
	}
	if b.Amount != 0 {
		t.Errorf("expected zero amount, got %d", b.Amount)
	}
	if b.NoShow {
		t.Error("missing no_show must default to false")
	}
}

func TestNormalizeBooking_ObjectIDFields(t *testing.T) {
	loc := time.UTC
	oid := primitive.NewObjectID()

	doc := bson.M{
		"_id":            oid,
		"venue_id":       "v1",
		"customer_id":    "c1",
		"date":           time.Date(2024, 3, 10, 18, 0, 0, 0, loc),
		"time_slot":      "18:00",
		"amount":         int64(1000),
		"payment_method": "cash",
		"status":         "completed",
		"no_show":        false,
	}

	b := normalizeBooking(doc, loc, 12, time.Now())

	if b.ID != oid.Hex() {
		t.Errorf("expected hex id %s, got %s", oid.Hex(), b.ID)
	}
	if b.SlotHour != 18 || b.Amount != 1000 || b.PaymentMethod != "cash" || b.Status != "completed" {
		t.Errorf("unexpected normalized booking: %+v", b)
	}
}
