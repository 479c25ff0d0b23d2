// Package meta provides functionality for carrying command metadata through context.
package meta

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID represents a unique identifier for tracing a command across services.
	TraceID ContextKey = "trace_id"

	// ActorID identifies who submitted the command.
	ActorID ContextKey = "actor_id"

	// ActorType indicates the kind of actor that submitted the command (user, service, job).
	ActorType ContextKey = "actor_type"

	// CommandName is the short type name of the command being handled.
	CommandName ContextKey = "command_name"

	// ExecutionMode is the execution mode the handler chain was resolved with.
	ExecutionMode ContextKey = "execution_mode"

	// ServiceName identifies the name of current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"
)

const (
	codeMetaNotFound     = "META_NOT_FOUND"
	codeMetaTypeMismatch = "META_TYPE_MISMATCH"
)

//nolint:gochecknoglobals // fixed list of keys extracted for logs and alerts
var allKeys = []ContextKey{
	TraceID,
	ActorID,
	ActorType,
	CommandName,
	ExecutionMode,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// It only adds values that are not empty strings and returns a new context
// with the added values.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all metadata from the provided context.
// Only non-empty string values of the predefined keys are included in the returned map.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// ShouldGetMeta returns the string value stored under key.
// It returns an error when the key is missing or holds a non-string value.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New(
			fmt.Sprintf("[meta]: key not found: %s", key),
			errx.WithCode(codeMetaNotFound),
		)
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New(
			fmt.Sprintf("[meta]: type mismatch for key %s: got %T", key, raw),
			errx.WithCode(codeMetaTypeMismatch),
		)
	}
	return v, nil
}
