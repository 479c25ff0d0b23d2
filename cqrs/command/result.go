package command

import (
	"encoding/json"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
)

// Shaped is implemented by every result-like value: Result, ResultOf and anything
// exposing the same success flag and error messages.
type Shaped interface {
	IsSuccess() bool
	Errors() []string
}

// Result represents the outcome of handling a command.
//
// A failed Result carries its error messages in insertion order. Once a Result has failed
// it stays failed: there is no way to remove errors. The zero value is a failure without
// messages; use Success to build a successful Result.
type Result struct {
	isSuccess bool
	errors    []string
}

// Success creates a Result representing the successful handling of a command.
func Success() Result {
	return Result{isSuccess: true}
}

// Failure creates a failed Result with the given error messages.
// The Result is a failure even when no messages are given.
func Failure(errs ...string) Result {
	return Result{isSuccess: false, errors: slices.Clone(errs)}
}

// NewResult creates a Result from a collection of error messages.
// Unlike Failure, success is derived from the collection: an empty collection is a success.
func NewResult(errs []string) Result {
	return Result{isSuccess: len(errs) == 0, errors: slices.Clone(errs)}
}

// NewResultWithStatus creates a Result with an explicit status and error messages.
func NewResultWithStatus(isSuccess bool, errs ...string) Result {
	return Result{isSuccess: isSuccess, errors: slices.Clone(errs)}
}

// FromExisting creates a Result copying the status and errors of src.
// It returns an error if src is nil.
func FromExisting(src Shaped) (Result, error) {
	if isNilShaped(src) {
		return Result{}, nilArgumentError("src")
	}
	return NewResultWithStatus(src.IsSuccess(), src.Errors()...), nil
}

// IsSuccess reports whether the command was handled successfully.
func (r Result) IsSuccess() bool {
	return r.isSuccess
}

// Errors returns a copy of the error messages in insertion order.
func (r Result) Errors() []string {
	return slices.Clone(r.errors)
}

// AddError appends an error message and marks the Result as failed.
func (r *Result) AddError(msg string) {
	r.errors = append(r.errors, msg)
	r.isSuccess = false
}

// AddErrors appends the given messages and recomputes the status from the error collection.
func (r *Result) AddErrors(msgs ...string) {
	r.errors = append(r.errors, msgs...)
	r.recompute()
}

// AddErrorsFrom appends the errors of other and recomputes the status.
// A nil other contributes no errors.
func (r *Result) AddErrorsFrom(other Shaped) {
	if !isNilShaped(other) {
		r.errors = append(r.errors, other.Errors()...)
	}
	r.recompute()
}

// Err converts a failed Result into an errx validation error, or returns nil on success.
func (r Result) Err() error {
	if r.isSuccess {
		return nil
	}
	return errx.New(
		r.message(),
		errx.WithCode(CodeCommandFailed),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"errors": r.Errors()}),
	)
}

// MarshalJSON encodes the Result as {"is_success": bool, "errors": [...]}.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{IsSuccess: r.isSuccess, Errors: r.errors})
}

func (r Result) String() string {
	if r.isSuccess {
		return "success"
	}
	return "failure: " + r.message()
}

// recompute keeps a forced failure failed even when it has no messages.
func (r *Result) recompute() {
	r.isSuccess = r.isSuccess && len(r.errors) == 0
}

func (r Result) message() string {
	if len(r.errors) == 0 {
		return "command failed"
	}
	return strings.Join(r.errors, "; ")
}

// ResultOf is a Result that carries an output of type O when successful.
//
// On failure the output is the zero value of O and must not be relied upon.
type ResultOf[O any] struct {
	res    Result
	output O
}

// WithOutput creates a successful ResultOf carrying output.
func WithOutput[O any](output O) ResultOf[O] {
	return ResultOf[O]{res: Success(), output: output}
}

// FailureOf creates a failed ResultOf with the given error messages.
func FailureOf[O any](errs ...string) ResultOf[O] {
	return ResultOf[O]{res: Failure(errs...)}
}

// NewResultOf creates a ResultOf from a collection of error messages, deriving success from it.
func NewResultOf[O any](errs []string) ResultOf[O] {
	return ResultOf[O]{res: NewResult(errs)}
}

// FromExistingOf creates a ResultOf copying the status and errors of src.
//
// When src is itself a successful ResultOf[O] its output is kept as well.
// It returns an error if src is nil.
func FromExistingOf[O any](src Shaped) (ResultOf[O], error) {
	if isNilShaped(src) {
		return ResultOf[O]{}, nilArgumentError("src")
	}

	out := ResultOf[O]{res: NewResultWithStatus(src.IsSuccess(), src.Errors()...)}
	if withOutput, ok := src.(interface{ Output() O }); ok && src.IsSuccess() {
		out.output = withOutput.Output()
	}
	return out, nil
}

// IsSuccess reports whether the command was handled successfully.
func (r ResultOf[O]) IsSuccess() bool {
	return r.res.IsSuccess()
}

// Errors returns a copy of the error messages in insertion order.
func (r ResultOf[O]) Errors() []string {
	return r.res.Errors()
}

// Output returns the output produced by a successful handler.
func (r ResultOf[O]) Output() O {
	return r.output
}

// Result returns the plain Result view, dropping the output.
func (r ResultOf[O]) Result() Result {
	return NewResultWithStatus(r.res.isSuccess, r.res.errors...)
}

// AddError appends an error message and marks the result as failed.
func (r *ResultOf[O]) AddError(msg string) {
	r.res.AddError(msg)
}

// AddErrors appends the given messages and recomputes the status.
func (r *ResultOf[O]) AddErrors(msgs ...string) {
	r.res.AddErrors(msgs...)
}

// AddErrorsFrom appends the errors of other and recomputes the status.
// A nil other contributes no errors.
func (r *ResultOf[O]) AddErrorsFrom(other Shaped) {
	r.res.AddErrorsFrom(other)
}

// Err converts a failed result into an errx validation error, or returns nil on success.
func (r ResultOf[O]) Err() error {
	return r.res.Err()
}

// MarshalJSON encodes the result, including the output only on success.
func (r ResultOf[O]) MarshalJSON() ([]byte, error) {
	v := resultJSON{IsSuccess: r.res.isSuccess, Errors: r.res.errors}
	if r.res.isSuccess {
		v.Output = r.output
	}
	return json.Marshal(v)
}

func (r ResultOf[O]) String() string {
	return r.res.String()
}

type resultJSON struct {
	IsSuccess bool     `json:"is_success"`
	Errors    []string `json:"errors,omitempty"`
	Output    any      `json:"output,omitempty"`
}

// isNilShaped also catches typed nil pointers wrapped in the interface.
func isNilShaped(s Shaped) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
