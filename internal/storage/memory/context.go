package memory

import "context"

type trxID uint64

type trxKey struct{}

func withTransaction(ctx context.Context, id trxID) context.Context {
	return context.WithValue(ctx, trxKey{}, id)
}

func transactionFromContext(ctx context.Context) (trxID, bool) {
	id, ok := ctx.Value(trxKey{}).(trxID)

	return id, ok
}
