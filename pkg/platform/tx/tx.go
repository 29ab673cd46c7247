package tx

import (
	"context"
	"database/sql"
	"fmt"
)

type ctxKey struct{}

type hooksKey struct{}

var txKey = ctxKey{}

// commitHooks collects callbacks for one unit of work. A unit of work runs on
// a single goroutine, so the slice needs no lock.
type commitHooks struct {
	fns []func()
}

func withHooks(ctx context.Context) (context.Context, *commitHooks) {
	h := &commitHooks{}
	return context.WithValue(ctx, hooksKey{}, h), h
}

func (h *commitHooks) run() {
	for _, fn := range h.fns {
		fn()
	}
}

// AfterCommit runs fn once the unit of work in ctx has committed, and never if
// it fails. Outside a unit of work fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		h.fns = append(h.fns, fn)
		return
	}
	fn()
}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Execer is the subset of *sql.DB and *sql.Tx that stores use.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ExecerFrom returns the transaction in ctx, or db when there is none.
func ExecerFrom(ctx context.Context, db *sql.DB) Execer {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}

// Run executes fn inside a transaction stored in the context handed to fn.
// A transaction already present in ctx is reused and left for its owner to
// commit.
func Run(ctx context.Context, db *sql.DB, fn func(txCtx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	ctx, hooks := withHooks(ctx)
	sqlTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	hooks.run()
	return nil
}

// Runner runs fn as one unit of work.
type Runner interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// SQLRunner runs units of work in a database transaction.
type SQLRunner struct {
	DB *sql.DB
}

func (r SQLRunner) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return Run(ctx, r.DB, fn)
}

// NoopRunner calls fn directly. In-memory stores have nothing to roll back,
// but AfterCommit callbacks still wait for fn to succeed.
type NoopRunner struct{}

func (NoopRunner) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		return fn(ctx)
	}
	ctx, hooks := withHooks(ctx)
	if err := fn(ctx); err != nil {
		return err
	}
	hooks.run()
	return nil
}
