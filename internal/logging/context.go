package logging

import (
	"context"
	"maps"
)

type fieldsKey struct{}

// ContextWithFields stores fields on ctx for loggers that read them back
// through WithContext. Later calls win on key conflicts.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ContextFields returns a copy of the fields carried by ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	if fields, ok := ctx.Value(fieldsKey{}).(map[string]any); ok {
		return maps.Clone(fields)
	}
	return nil
}
