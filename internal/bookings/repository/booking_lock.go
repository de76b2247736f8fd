package repository

import (
	"context"
	"time"

	"turfly/pkg/config"
	"turfly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const bookingLocksCollection = "Booking_locks"

// BookingLockRepository backs the advisory slot lock. The lock document's
// _id is derived from the slot coordinates, so two requests racing for
// the same slot collide on the primary key and exactly one insert wins.
// A TTL index on expires_at reaps locks that were never released.
type BookingLockRepository interface {
	Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(bookingLocksCollection),
	}
}

func (r *mongoBookingLockRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.cfg.WriteTimeout)
}

// Create inserts the lock document. A duplicate key error means another
// request holds the slot; callers translate that into a conflict.
func (r *mongoBookingLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	lock.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}

	return lock, nil
}

// Delete releases the lock. Deleting an already-expired lock is a no-op,
// not an error.
func (r *mongoBookingLockRepository) Delete(ctx context.Context, lockID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
