package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once

	externalIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:@-]+$`)
)

// Validator returns the shared validator; field names in errors follow json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// externalid: ids that end up in upstream URL paths.
		_ = validate.RegisterValidation("externalid", func(fl validator.FieldLevel) bool {
			return externalIDPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidateStruct runs tag validation and flattens failures into field messages.
func ValidateStruct(s any) []ValidationError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Field: "", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: describeTag(fe),
		})
	}
	return out
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be %s characters or less", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "externalid":
		return fmt.Sprintf("%s may only contain letters, digits and . _ : @ -", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// JoinValidationErrors renders field errors as one message.
func JoinValidationErrors(errs []ValidationError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func GetQueryParamAsInt(c fiber.Ctx, paramName string, defaultValue int) (int, error) {
	// Get the query parameter value
	paramValue := c.Query(paramName)

	// If parameter is not provided or empty, return default value
	if paramValue == "" {
		return defaultValue, nil
	}

	// Try to convert to integer
	intValue, err := strconv.Atoi(paramValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	// Validate that value is greater than 0
	if intValue <= 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	return intValue, nil
}
