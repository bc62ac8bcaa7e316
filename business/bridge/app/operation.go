package app

import (
	"context"

	"github.com/google/uuid"
)

type operationKey struct{}

// WithOperationID tags ctx with the bridge operation its transactions
// belong to.
func WithOperationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, operationKey{}, id)
}

// OperationID returns the operation ctx was tagged with, or uuid.Nil.
func OperationID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(operationKey{}).(uuid.UUID)
	return id
}
