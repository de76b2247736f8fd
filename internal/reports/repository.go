package reports

import (
	"context"
	"fmt"
	"time"

	"turfly/pkg/config"
	"turfly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	venuesCollection   = "Venues"
	bookingsCollection = "Bookings"
)

// ReportRepository reads the raw inputs a daily report is built from. It
// deliberately returns undecoded booking documents: stored bookings mix
// native timestamps with legacy string dates, so a typed decode would
// reject exactly the records the fallback chains exist to handle.
type ReportRepository interface {
	FindVenuesByOwner(ctx context.Context, ownerID string) ([]*model.Venue, error)
	FindRawBookings(ctx context.Context, venueIDs []string) ([]bson.M, error)
}

type mongoReportRepository struct {
	cfg      *config.Config
	venues   *mongo.Collection
	bookings *mongo.Collection
}

func NewMongoReportRepository(cfg *config.Config) ReportRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReportRepository{
		cfg:      cfg,
		venues:   db.Collection(venuesCollection),
		bookings: db.Collection(bookingsCollection),
	}
}

func (r *mongoReportRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReportRepository) FindVenuesByOwner(ctx context.Context, ownerID string) ([]*model.Venue, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.venues.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to find venues for owner [%s]: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var venues []*model.Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, fmt.Errorf("failed to decode venues: %w", err)
	}

	return venues, nil
}

// FindRawBookings fetches every booking for the given venues with no
// server-side date filter. Date filtering happens in memory after the
// fallback chains have normalized each record's effective time; a query
// on the stored date field would silently miss string-dated records.
func (r *mongoReportRepository) FindRawBookings(ctx context.Context, venueIDs []string) ([]bson.M, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"venue_id": bson.M{"$in": venueIDs}}
	opts := options.Find().SetBatchSize(500)

	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings for report: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for report: %w", err)
	}

	return docs, nil
}

// normalizeBooking turns a raw document into a ReportBooking, applying
// the default and fallback rules for every field that can be absent or
// malformed.
func normalizeBooking(doc bson.M, loc *time.Location, defaultSlotHour int, now time.Time) ReportBooking {
	return ReportBooking{
		ID:            idValue(doc["_id"]),
		VenueID:       idValue(doc["venue_id"]),
		CustomerID:    idValue(doc["customer_id"]),
		EffectiveTime: effectiveTime(doc["date"], doc["created_at"], loc, now),
		SlotHour:      slotHour(doc["time_slot"], defaultSlotHour),
		Amount:        amountValue(doc["amount"]),
		PaymentMethod: stringValue(doc["payment_method"]),
		Status:        stringValue(doc["status"]),
		NoShow:        boolValue(doc["no_show"]),
	}
}

func idValue(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	}
	return ""
}
