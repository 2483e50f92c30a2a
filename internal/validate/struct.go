package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"schoolbooks/internal/domain"
)

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterValidation("board", enum(domain.Boards))
	v.RegisterValidation("category_type", enum(domain.CategoryTypes))
	v.RegisterValidation("customer_type", enum(domain.CustomerTypes))
	v.RegisterValidation("order_status", enum(domain.OrderStatuses))
	v.RegisterValidation("payment_method", enum(domain.PaymentMethods))
	v.RegisterValidation("payment_status", enum(domain.PaymentStatuses))
	v.RegisterValidation("role", enum(domain.Roles))
}

func enum[T ~string](values []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return domain.OneOf(T(fl.Field().String()), values)
	}
}

type FieldError struct {
	Field   string
	Message string
}

// Errors is the set of problems found in one form, in field order.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Map keys messages by form field for templates; the first message per field wins.
func (e Errors) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// First is the message shown in the flash banner.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

type messager interface{ messages() map[string]string }

// Form runs the struct tags on a form and maps failures to user-facing
// messages. Forms may override messages per "field.tag".
func Form(form any) Errors {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "form", Message: "Invalid form"}}
	}
	var custom map[string]string
	if m, ok := form.(messager); ok {
		custom = m.messages()
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := custom[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = message(fe)
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required", "required_if", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be negative", field)
	case "eqfield":
		return fmt.Sprintf("%s does not match", field)
	case "oneof", "board", "category_type", "customer_type", "order_status", "payment_method", "payment_status", "role":
		return fmt.Sprintf("Select a valid %s", strings.ToLower(field))
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field)
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

// humanize turns "unit_price" or "categoryType" into "Unit price" / "Category type".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case 'A' <= r && r <= 'Z' && i > 0:
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
