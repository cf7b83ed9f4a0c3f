// Package validation checks entity fields before they reach storage.
//
// Every check returns a Result instead of failing on assignment. Uniqueness
// rules need the store and live in the services; everything that can be decided
// from the value alone lives here.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"recipebox/internal/apperr"
	"recipebox/internal/models"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("recipe_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		// bcrypt hashes at most 72 bytes of input.
		_ = v.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= 72
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		instance = v
	})
	return instance
}

// FieldError is a single rule violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects the violations of one check. The zero value is valid.
type Result struct {
	Errors []FieldError
}

// OK reports whether no rule was violated.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Err converts the result into a validation error carrying the first message,
// or nil when valid.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return apperr.Validation("%s", r.Errors[0].Message)
}

// Merge appends the violations of other.
func (r Result) Merge(other Result) Result {
	r.Errors = append(r.Errors, other.Errors...)
	return r
}

// Signup is the registration payload.
type Signup struct {
	Username string `validate:"min=3,max=80"`
	Email    string `validate:"required,max=120,recipe_email"`
	Password string `validate:"min=6,bcrypt_len"`
}

// RecipeFields are the mutable recipe attributes.
type RecipeFields struct {
	Title        string `validate:"min=3,max=200"`
	Description  string `validate:"max=5000"`
	Ingredients  string `validate:"min=10"`
	Instructions string `validate:"min=10"`
	CookingTime  int    `validate:"gt=0"`
	ImageURL     string `validate:"omitempty,max=255"`
}

// ValidateSignup checks a registration payload.
func ValidateSignup(s Signup) Result { return check(s) }

// ValidateUsername checks the username shape.
func ValidateUsername(username string) Result {
	return checkVar("Username", username, "min=3,max=80")
}

// ValidateEmail checks the email shape.
func ValidateEmail(email string) Result {
	return checkVar("Email", email, "required,max=120,recipe_email")
}

// ValidateRecipe checks every recipe field.
func ValidateRecipe(f RecipeFields) Result { return check(f) }

// RecipeFieldsOf extracts the validated attributes of a recipe.
func RecipeFieldsOf(r *models.Recipe) RecipeFields {
	return RecipeFields{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CookingTime:  r.CookingTime,
		ImageURL:     r.ImageURL,
	}
}

// ValidateComment checks comment content; surrounding whitespace does not count.
func ValidateComment(content string) Result {
	return checkVar("Content", content, "notblank,max=2000")
}

// ValidateNotificationType checks that t is one of the declared types.
func ValidateNotificationType(t models.NotificationType) Result {
	for _, known := range models.NotificationTypes {
		if t == known {
			return Result{}
		}
	}
	return Result{Errors: []FieldError{{
		Field:   "Type",
		Message: fmt.Sprintf("Notification type must be one of: %s", joinTypes()),
	}}}
}

func joinTypes() string {
	names := make([]string, len(models.NotificationTypes))
	for i, t := range models.NotificationTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func check(s any) Result {
	err := get().Struct(s)
	if err == nil {
		return Result{}
	}
	return toResult(err, "")
}

func checkVar(field string, value any, tag string) Result {
	err := get().Var(value, tag)
	if err == nil {
		return Result{}
	}
	return toResult(err, field)
}

func toResult(err error, field string) Result {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Errors: []FieldError{{Field: field, Message: err.Error()}}}
	}
	var r Result
	for _, fe := range verrs {
		name := fe.Field()
		if field != "" {
			name = field
		}
		r.Errors = append(r.Errors, FieldError{Field: name, Message: message(name, fe.Tag(), fe.Param())})
	}
	return r
}

func message(field, tag, param string) string {
	switch field {
	case "Email":
		if tag == "recipe_email" || tag == "required" {
			return "Invalid email format"
		}
	case "CookingTime":
		return "Cooking time must be a positive integer"
	case "Password":
		if tag == "bcrypt_len" {
			return "Password must be at most 72 bytes"
		}
	case "Content":
		if tag == "notblank" {
			return "Comment cannot be empty"
		}
	}

	label := map[string]string{
		"Username":     "Username",
		"Password":     "Password",
		"Title":        "Title",
		"Description":  "Description",
		"Ingredients":  "ingredients",
		"Instructions": "instructions",
		"ImageURL":     "Image URL",
		"Content":      "Comment",
		"Email":        "Email",
	}[field]
	if label == "" {
		label = field
	}

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, param)
	case "required":
		return fmt.Sprintf("%s is required", label)
	}
	return fmt.Sprintf("%s failed on the '%s' rule", label, tag)
}
