// Package validation parses request bodies and checks them against
// struct tags, producing one 400 message that lists every failing field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"truckfin-backend/internal/finance"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Money is compared as float64; range checks only need the ordering.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	register := func(tag string, ok func(string) bool) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return ok(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	register("frequency", func(s string) bool { return finance.Frequency(s).Valid() })
	register("period", func(s string) bool { return finance.Period(s).Valid() })
	register("role", func(s string) bool { return finance.Role(s).Valid() })
	register("category", func(s string) bool { return finance.ExpenseCategory(s).Valid() })
	register("paytype", func(s string) bool { return finance.PayType(s).Valid() })
	register("statecode", func(s string) bool {
		_, ok := finance.LookupStateTax(s)
		return ok
	})

	return v
}

// ParseBody decodes the request body into out and validates it.
func ParseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return Struct(out)
}

// Struct validates v and converts failures into a 400 fiber error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fiber.NewError(fiber.StatusBadRequest, "Validation error: "+err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return fiber.NewError(fiber.StatusBadRequest, "Validation error: "+strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "frequency":
		return fmt.Sprintf("%s must be one of %v", field, finance.Frequencies())
	case "period":
		return fmt.Sprintf("%s must be one of [%s %s %s]", field, finance.PeriodDay, finance.PeriodWeek, finance.PeriodMonth)
	case "role":
		return fmt.Sprintf("%s must be one of [%s %s]", field, finance.RoleCompany, finance.RoleOwner)
	case "category":
		return field + " must be a known expense category"
	case "paytype":
		return field + " must be a known pay type"
	case "statecode":
		return field + " must be a two-letter US state code"
	case "alphanum":
		return field + " must contain only letters and digits"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

var dateLayouts = []string{time.DateOnly, time.RFC3339}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the time in UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
}

// Date wraps ParseDate for request bodies and query strings. It accepts
// either layout and marshals back as RFC3339.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Ptr returns nil for a zero Date.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ParamID parses a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}
