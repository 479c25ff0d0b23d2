package forward

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

// ToCommand decodes the request into a C and sends it through the full pipeline.
// A successful result is written with 200 and a failed one with 422.
// Faults go to the app error handler.
func ToCommand[C command.Command](d *command.Dispatcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cmd C
		if err := decode(c, &cmd); err != nil {
			return errx.Wrap(err)
		}

		res, err := command.Send(c.UserContext(), d, cmd)
		if err != nil {
			return errx.Wrap(err)
		}

		return writeResult(c, res)
	}
}

// ToOutputCommand is ToCommand for commands that produce an O.
// The output is written under "output" only on success.
func ToOutputCommand[C command.Command, O any](d *command.Dispatcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cmd C
		if err := decode(c, &cmd); err != nil {
			return errx.Wrap(err)
		}

		res, err := command.SendWithOutput[C, O](c.UserContext(), d, cmd)
		if err != nil {
			return errx.Wrap(err)
		}

		return writeResult(c, res)
	}
}

func writeResult(c *fiber.Ctx, res command.Shaped) error {
	status := fiber.StatusOK
	if !res.IsSuccess() {
		status = fiber.StatusUnprocessableEntity
	}
	return errx.Wrap(c.Status(status).JSON(res))
}
