package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	apperrors "turfly/pkg/errors"
)

// TransactionFunc runs inside a session. Repository calls made with the
// session context join the transaction instead of opening their own
// timeouts.
type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
	txOpts *options.TransactionOptions
}

func NewTransactionManager(client *mongo.Client) TransactionManager {
	// Slot checks read what concurrent writers committed and booking
	// writes must survive a primary failover, hence majority on both
	// sides.
	txOpts := options.Transaction().
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority())

	return &mongoTransactionManager{
		client: client,
		txOpts: txOpts,
	}
}

// ExecuteTransaction runs fn in a single Mongo transaction, retried by
// the driver on transient errors. Application errors pass through
// unwrapped so callers can map them to HTTP statuses.
func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	}, m.txOpts)

	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
