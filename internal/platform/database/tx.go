package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner wraps a unit of work in the store's transaction facility, when the
// deployment has one. Callbacks receive a context that carries the session;
// collection operations made with it join the transaction automatically.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// Transactional reports whether WithTransaction actually provides
	// all-or-nothing semantics. Callers that need compensation logic in
	// degraded mode branch on this.
	Transactional() bool
}

type sessionTxRunner struct {
	client *mongo.Client
}

// NewSessionTxRunner returns a TxRunner backed by Mongo multi-document
// transactions. Only valid on replica-set / mongos topologies.
func NewSessionTxRunner(client *mongo.Client) TxRunner {
	return &sessionTxRunner{client: client}
}

func (r *sessionTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (r *sessionTxRunner) Transactional() bool { return true }

type noTxRunner struct{}

// NewNoTxRunner returns a pass-through runner for standalone deployments.
// The callback executes without a transaction wrapper; a mid-sequence
// failure leaves earlier writes applied.
func NewNoTxRunner() TxRunner {
	return noTxRunner{}
}

func (noTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (noTxRunner) Transactional() bool { return false }
