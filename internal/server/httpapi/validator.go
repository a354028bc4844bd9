package httpapi

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/go-playground/validator/v10"
)

// fieldMessages maps a JSON field to the message reported when it fails.
var fieldMessages = map[string]string{
	"name":        common.MsgNameRequired,
	"email":       common.MsgInvalidEmail,
	"password":    common.MsgWeakPassword,
	"oldPassword": common.MsgOldPasswordRequired,
	"newPassword": common.MsgWeakPassword,
	"title":       common.MsgTitleRequired,
}

// requestValidator adapts go-playground/validator to echo.Validator and
// reports failures as *common.ValidationError.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration cannot fail for a non-empty tag and a non-nil func.
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return auth.IsStrongPassword(fl.Field().String())
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &common.ValidationError{}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Failed on " + fe.Tag()
		}
		verr.Add(fe.Field(), msg)
	}
	return verr
}
