// internal/logging/context.go
package logging

import (
	"context"

	"go.uber.org/zap"
)

type operationCtxKey struct{}

// WithOperation tags every entry logged with ctx with the board operation name.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationCtxKey{}, op)
}

func OperationFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	op, _ := ctx.Value(operationCtxKey{}).(string)
	return op
}

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 1)
	if op := OperationFromContext(ctx); op != "" {
		fields = append(fields, zap.String("op", op))
	}
	return fields
}
