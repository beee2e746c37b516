package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// TransactionRunner executes fn inside a single database transaction.
// fn must issue its operations with the context it receives.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// ClientInterface abstracts the session factory of *mongo.Client.
type ClientInterface interface {
	StartSession(opts ...*options.SessionOptions) (mongo.Session, error)
}

// SessionTransactionRunner runs a transaction on a fresh session.
// The transaction is attempted once; a transient error is returned, not retried.
type SessionTransactionRunner struct {
	client ClientInterface
	opts   *options.TransactionOptions
}

// NewSessionTransactionRunner creates a runner with majority write concern.
func NewSessionTransactionRunner(client ClientInterface) *SessionTransactionRunner {
	return &SessionTransactionRunner{
		client: client,
		opts: options.Transaction().
			SetReadConcern(readconcern.Snapshot()).
			SetWriteConcern(writeconcern.New(writeconcern.WMajority())),
	}
}

// RunInTransaction commits when fn succeeds and aborts otherwise. The session
// is ended on every path.
func (r *SessionTransactionRunner) RunInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(r.opts); err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}

		if err := fn(sc); err != nil {
			// ctx may already be cancelled here.
			if abortErr := sc.AbortTransaction(context.Background()); abortErr != nil {
				return fmt.Errorf("%w (abort failed: %v)", err, abortErr)
			}
			return err
		}

		if err := sc.CommitTransaction(sc); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}
