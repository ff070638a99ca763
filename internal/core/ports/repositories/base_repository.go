package repositories

import "context"

// TxManager scopes a unit of work. WithinTransaction begins a transaction,
// hands fn a context carrying it, commits when fn returns nil and rolls back
// on any error or panic. A call made with a context that already carries a
// transaction joins it instead of opening a new one.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
