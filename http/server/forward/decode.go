// Package forward adapts command dispatch to Fiber handlers.
package forward

import (
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

const (
	codeInvalidContentType = "INVALID_CONTENT_TYPE"
	codeInvalidJSONBody    = "INVALID_JSON_BODY"
	codeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	codeInvalidPathParams  = "INVALID_PATH_PARAMS"
)

// decode fills cmd from the JSON body on POST, PUT and PATCH and from the query string
// otherwise. Path params are decoded last so they override both.
func decode(c *fiber.Ctx, cmd any) error {
	var err error
	if isJSONMethod(c.Method()) {
		err = decodeBody(c, cmd)
	} else {
		err = decodeQuery(c, cmd)
	}
	if err != nil {
		return err
	}

	return decodeParams(c, cmd)
}

func decodeBody(c *fiber.Ctx, cmd any) error {
	if len(c.Body()) == 0 {
		return nil
	}

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return errx.New(
			"content type must be application/json for this request",
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidContentType),
		)
	}

	if err := c.BodyParser(cmd); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidJSONBody))
	}
	return nil
}

func decodeQuery(c *fiber.Ctx, cmd any) error {
	if len(c.Queries()) == 0 {
		return nil
	}

	if err := c.QueryParser(cmd); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidQueryParams))
	}
	return nil
}

func decodeParams(c *fiber.Ctx, cmd any) error {
	if len(c.AllParams()) == 0 {
		return nil
	}

	if err := c.ParamsParser(cmd); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidPathParams))
	}
	return nil
}

func isJSONMethod(method string) bool {
	return slices.Contains([]string{fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch}, method)
}
