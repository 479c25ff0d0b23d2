package val_test

import (
	"context"
	"testing"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/val"
)

type address struct {
	City string `json:"city" validate:"required"`
}

type createUser struct {
	Name    string   `json:"name"     validate:"notblank,max=5"`
	Email   string   `json:"email"    validate:"required,email"`
	Age     int      `json:"age"      validate:"gte=18"`
	Role    string   `json:"role"     validate:"omitempty,oneof=admin user"`
	Tags    []string `json:"tags"     validate:"max=2"`
	Address address  `json:"address"`
	Secret  string   `json:"-"        validate:"omitempty,min=3"`
}

func validCommand() createUser {
	return createUser{Name: "ann", Email: "ann@example.com", Age: 30, Address: address{City: "Tashkent"}}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*createUser)
		want   []val.FieldError
	}{
		{name: "valid", mutate: func(*createUser) {}},
		{
			name:   "blank name",
			mutate: func(c *createUser) { c.Name = "   " },
			want:   []val.FieldError{{Field: "name", Message: "Must not be blank"}},
		},
		{
			name:   "string length",
			mutate: func(c *createUser) { c.Name = "annabelle" },
			want:   []val.FieldError{{Field: "name", Message: "Must be at most 5 characters"}},
		},
		{
			name:   "param description",
			mutate: func(c *createUser) { c.Age = 12 },
			want:   []val.FieldError{{Field: "age", Message: "Must be greater than or equal to 18"}},
		},
		{
			name:   "oneof",
			mutate: func(c *createUser) { c.Role = "root" },
			want:   []val.FieldError{{Field: "role", Message: "Must be one of: admin, user"}},
		},
		{
			name:   "collection size",
			mutate: func(c *createUser) { c.Tags = []string{"a", "b", "c"} },
			want:   []val.FieldError{{Field: "tags", Message: "Must be at most 2"}},
		},
		{
			name:   "nested field path",
			mutate: func(c *createUser) { c.Address.City = "" },
			want:   []val.FieldError{{Field: "address.city", Message: "This field is required"}},
		},
		{
			name:   "dash json tag falls back to field name",
			mutate: func(c *createUser) { c.Secret = "x" },
			want:   []val.FieldError{{Field: "Secret", Message: "Must be at least 3 characters"}},
		},
		{
			name:   "field order",
			mutate: func(c *createUser) { c.Name = ""; c.Email = "nope" },
			want: []val.FieldError{
				{Field: "name", Message: "Must not be blank"},
				{Field: "email", Message: "Invalid email format"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)

			got, err := val.Check(cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_InvalidInput(t *testing.T) {
	var cmd *createUser
	_, err := val.Check(cmd)
	require.Error(t, err)
}

func TestValidateSchema(t *testing.T) {
	require.NoError(t, val.ValidateSchema(validCommand()))

	cmd := validCommand()
	cmd.Email = ""
	err := val.ValidateSchema(cmd)
	require.Error(t, err)

	e := errx.AsErrorX(err)
	assert.Equal(t, val.CodeValidationFailed, e.Code())
	assert.Equal(t, errx.T_Validation, e.Type())
	assert.Equal(t, "This field is required", e.Fields()["email"])
}

func TestSchemaValidator(t *testing.T) {
	v := val.SchemaValidator[createUser]()

	res, err := v.Validate(t.Context(), validCommand())
	require.NoError(t, err)
	assert.True(t, res.IsSuccess())

	cmd := validCommand()
	cmd.Name = ""
	cmd.Age = 1
	res, err = v.Validate(t.Context(), cmd)
	require.NoError(t, err)
	assert.False(t, res.IsSuccess())
	assert.Equal(t, []string{
		"name: Must not be blank",
		"age: Must be greater than or equal to 18",
	}, res.Errors())
}

func TestAll(t *testing.T) {
	unique := command.ValidatorFunc[createUser](func(_ context.Context, cmd createUser) (command.Result, error) {
		if cmd.Email == "taken@example.com" {
			return command.Failure("email is already taken"), nil
		}
		return command.Success(), nil
	})
	forced := command.ValidatorFunc[createUser](func(context.Context, createUser) (command.Result, error) {
		return command.Failure(), nil
	})

	cmd := validCommand()
	cmd.Email = "taken@example.com"
	cmd.Age = 1

	res, err := val.All(val.SchemaValidator[createUser](), unique).Validate(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"age: Must be greater than or equal to 18", "email is already taken"}, res.Errors())

	res, err = val.All[createUser](forced).Validate(t.Context(), validCommand())
	require.NoError(t, err)
	assert.False(t, res.IsSuccess())
}

func TestRegisterValidation(t *testing.T) {
	type order struct {
		Code string `json:"code" validate:"prefixed=ORD"`
	}

	err := val.RegisterValidation("prefixed", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) > 3 && fl.Field().String()[:3] == fl.Param()
	}, "Must start with prefix %s")
	require.NoError(t, err)

	got, err := val.Check(order{Code: "X-1"})
	require.NoError(t, err)
	assert.Equal(t, []val.FieldError{{Field: "code", Message: "Must start with prefix ORD"}}, got)
}
