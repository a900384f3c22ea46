package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/deppfellow/social-scores/internal/errs"
	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads.
//
// Typical pattern:
//   - tag path/query fields with `param:"..."`/`query:"..."` and `validate:"..."`
//   - implement Validate() error as `return validation.Struct(r)`
type Validatable interface {
	Validate() error
}

// RawDecoder is implemented by payloads whose JSON body is a schema record.
// DecodeRaw receives the decoded body and returns *schema.ValidationError on
// failure.
type RawDecoder interface {
	DecodeRaw(raw map[string]any) error
}

// CustomValidationError is a failure that no tag or schema rule expresses,
// e.g. a cross-field check done in Validate.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

// newValidator reports fields by the name the client used: the param, query
// or json tag, in that order.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"param", "query", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
	return v
}

// Struct validates the `validate` tags of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds the request into payload and validates it.
//
// Flow:
//  1. Payloads implementing RawDecoder get their path params bound by Echo
//     and their JSON body decoded into a map and passed to DecodeRaw.
//     Other payloads go through c.Bind.
//  2. payload.Validate() checks the bound parameters.
//  3. Any failure becomes a 400 with field-level errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if decoder, ok := payload.(RawDecoder); ok {
		if err := bindRaw(c, payload, decoder); err != nil {
			return err
		}
	} else if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err), false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindRaw(c echo.Context, payload any, decoder RawDecoder) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err), false, nil, nil, nil)
	}

	raw, err := decodeBody(c.Request().Body)
	if err != nil {
		return errs.NewBadRequestError("Request body must be a JSON object", false, nil, nil, nil)
	}

	if err := decoder.DecodeRaw(raw); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}
	return nil
}

// decodeBody reads a JSON object. An empty body decodes to an empty map so
// that every field takes its default.
func decodeBody(body io.Reader) (map[string]any, error) {
	raw := map[string]any{}
	if body == nil {
		return raw, nil
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if raw == nil {
		// body was the literal null
		return nil, errors.New("body is null")
	}
	return raw, nil
}

// bindMessage extracts the client-facing part of an Echo bind error.
func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return "Invalid request"
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var schemaErr *schema.ValidationError
	var validationErrors validator.ValidationErrors
	var customErrors CustomValidationErrors

	switch {
	case errors.As(err, &schemaErr):
		for _, v := range schemaErr.Violations {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:      v.Field,
				Error:      v.Message,
				Constraint: v.Constraint,
			})
		}

	case errors.As(err, &validationErrors):
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:      fe.Field(),
				Error:      schema.Describe(fe.Tag(), fe.Param(), fe.Value()),
				Constraint: fe.Tag(),
			})
		}

	case errors.As(err, &customErrors):
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}

	default:
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "", Error: err.Error()})
	}

	return "Validation failed", fieldErrors
}
