package handlers

import (
	"reflect"
	"strconv"
	"strings"

	"recipebox/internal/apperr"
	"recipebox/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// requestValidator checks request payload shape. Entity rules live in the
// validation package.
var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into req and checks its validate tags.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		logging.Debug().Err(err).Str("path", c.Path()).Msg("error parsing request body")
		return apperr.Validation("Invalid request body")
	}
	if err := requestValidator.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok || len(validationErrors) == 0 {
			return apperr.Validation("Invalid request body")
		}
		e := validationErrors[0]
		if e.Tag() == "required" {
			return apperr.Validation("%s is required", e.Field())
		}
		return apperr.Validation("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return nil
}

// idParam reads a positive integer route parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid %s", name)
	}
	return uint(id), nil
}
