package command

import (
	"reflect"
	"strings"
)

// Key identifies a handler by command type and, for output-bearing handlers, output type.
type Key struct {
	Command reflect.Type
	Output  reflect.Type // nil for handlers returning a plain Result
}

// KeyFor returns the Key of the plain handler for commands of type C.
func KeyFor[C Command]() Key {
	return Key{Command: reflect.TypeFor[C]()}
}

// OutputKeyFor returns the Key of the output-bearing handler for commands of type C.
func OutputKeyFor[C Command, O any]() Key {
	return Key{Command: reflect.TypeFor[C](), Output: reflect.TypeFor[O]()}
}

// Name returns the short name of the command type.
func (k Key) Name() string {
	return typeName(k.Command)
}

func (k Key) String() string {
	if k.Output == nil {
		return typeString(k.Command)
	}
	return typeString(k.Command) + " -> " + typeString(k.Output)
}

// Resolver looks up the handler chain for a Key under an execution mode.
//
// Resolve is a pure lookup. The returned value must be a Handler[C] for plain keys and an
// OutputHandler[C, O] for output keys. The same key may resolve to different chains in
// different modes. Resolve reports false when nothing is registered.
type Resolver interface {
	Resolve(key Key, mode ExecutionMode) (any, bool)
}

// ResolveHandler resolves the plain handler chain for C.
// It returns a NO_HANDLER_REGISTERED error when nothing is registered.
func ResolveHandler[C Command](r Resolver, mode ExecutionMode) (Handler[C], error) {
	key := KeyFor[C]()

	v, ok := r.Resolve(key, mode)
	if !ok || v == nil {
		return nil, noHandlerError(key)
	}

	h, ok := v.(Handler[C])
	if !ok {
		return nil, handlerTypeMismatchError(key, v)
	}
	return h, nil
}

// ResolveOutputHandler resolves the output-bearing handler chain for C.
// It returns a NO_HANDLER_REGISTERED error when nothing is registered.
func ResolveOutputHandler[C Command, O any](r Resolver, mode ExecutionMode) (OutputHandler[C, O], error) {
	key := OutputKeyFor[C, O]()

	v, ok := r.Resolve(key, mode)
	if !ok || v == nil {
		return nil, noHandlerError(key)
	}

	h, ok := v.(OutputHandler[C, O])
	if !ok {
		return nil, handlerTypeMismatchError(key, v)
	}
	return h, nil
}

// TypeName returns the short name of C, e.g. "CreateUser" for *app.CreateUser.
func TypeName[C any]() string {
	return typeName(reflect.TypeFor[C]())
}

// NameOf returns the short name of the dynamic type of v.
func NameOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return typeName(reflect.TypeOf(v))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return strings.TrimPrefix(t.String(), "*")
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
