package account

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bcrypt only looks at the first 72 bytes of a password.
const maxPasswordBytes = 72

// RegistrationRequest is the inbound registration payload.
type RegistrationRequest struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,max=100"`
	CoupleName string `json:"coupleName,omitempty" validate:"max=100"`
}

// LoginRequest is the inbound login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NormalizeEmail trims and lower-cases an address before any lookup or write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalize returns a copy with whitespace trimmed and the email lower-cased.
// The password is left untouched.
func (r RegistrationRequest) normalize() RegistrationRequest {
	return RegistrationRequest{
		Email:      NormalizeEmail(r.Email),
		Password:   r.Password,
		Name:       strings.TrimSpace(r.Name),
		CoupleName: strings.TrimSpace(r.CoupleName),
	}
}

// validateRegistration normalizes req and checks it against its constraints.
func validateRegistration(req RegistrationRequest) (RegistrationRequest, error) {
	in := req.normalize()
	fields := fieldErrors(validate.Struct(in))
	if _, bad := fields["password"]; !bad && len(in.Password) > maxPasswordBytes {
		fields["password"] = fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)
	}
	if len(fields) > 0 {
		return in, &ValidationError{Fields: fields}
	}
	return in, nil
}

func validateLogin(req LoginRequest) (LoginRequest, error) {
	in := LoginRequest{Email: NormalizeEmail(req.Email), Password: req.Password}
	if fields := fieldErrors(validate.Struct(in)); len(fields) > 0 {
		return in, &ValidationError{Fields: fields}
	}
	return in, nil
}

func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields
	}
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
