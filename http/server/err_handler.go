package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/meta"
)

const codeRouterError = "ROUTER_ERROR"

// WriteErrorResponse writes err as {"trace_id": ..., "error": {...}} with a status derived from its errx type.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) error {
	e := toErrorX(err)

	c.Status(statusOf(e))
	return c.JSON(fiber.Map{
		"trace_id": c.UserContext().Value(meta.TraceID),
		"error":    newErrorSchema(e, hideDetails),
	})
}

// errorHandler skips errors whose response was already written.
func errorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}
		return WriteErrorResponse(c, err, hideDetails)
	}
}

type errorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

func newErrorSchema(e errx.ErrorX, hideDetails bool) errorSchema {
	s := errorSchema{
		Code:    e.Code(),
		Message: e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		s.Trace = e.Trace()
		s.Details = e.Details()
	}
	return s
}

func statusOf(e errx.ErrorX) int {
	if e.Code() == command.CodeNoHandlerRegistered {
		return fiber.StatusNotImplemented
	}

	switch e.Type() {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func toErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return errx.AsErrorX(err)
	}

	var t errx.Type
	switch code := fiberErr.Code; {
	case code == fiber.StatusUnauthorized:
		t = errx.T_Authentication
	case code == fiber.StatusForbidden:
		t = errx.T_Forbidden
	case code == fiber.StatusNotFound:
		t = errx.T_NotFound
	case code == fiber.StatusConflict:
		t = errx.T_Conflict
	case code == fiber.StatusTooManyRequests:
		t = errx.T_Throttling
	case code >= 400 && code < 500:
		t = errx.T_Validation
	default:
		t = errx.T_Internal
	}

	return errx.AsErrorX(errx.New(
		fiberErr.Message,
		errx.WithCode(codeRouterError),
		errx.WithType(t),
		errx.WithDetails(errx.D{"fiber_code": fiberErr.Code}),
	))
}

// StatusOf returns the HTTP status the error handler responds with for err.
func StatusOf(err error) int {
	return statusOf(toErrorX(err))
}
