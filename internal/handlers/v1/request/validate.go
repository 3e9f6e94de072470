// Package request holds what the v1 handlers share for turning request bodies
// into service input: tag validation, lenient decimals and date parsing.
package request

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks body's validate tags. Failed required tags, plus any names in
// missing, produce 400 "Missing required fields"; other failures produce
// 400 "Invalid request data".
func Validate(body any, missing ...string) error {
	var invalid []string

	err := validate.Struct(body)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
				continue
			}
			invalid = append(invalid, fe.Field()+" failed "+fe.Tag())
		}
	} else if err != nil {
		return huma.NewError(http.StatusInternalServerError, apierror.MsgInternal, err)
	}

	if len(missing) > 0 {
		return huma.NewError(http.StatusBadRequest, apierror.MsgMissingFields, errors.New(strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		return huma.NewError(http.StatusBadRequest, apierror.MsgInvalidRequest, errors.New(strings.Join(invalid, ", ")))
	}
	return nil
}

// MissingUserID reports user_id as missing when binding trusts the client and none was sent.
func MissingUserID(binding auth.UserBinding, userID string) []string {
	if binding == auth.BindClient && userID == "" {
		return []string{"user_id"}
	}
	return nil
}

// Invalid wraps a parse failure as 400 "Invalid request data".
func Invalid(field string, err error) error {
	return huma.NewError(http.StatusBadRequest, apierror.MsgInvalidRequest, errors.New(field+": "+err.Error()))
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
