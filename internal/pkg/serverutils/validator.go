package serverutils

import (
	"fmt"

	"doc-chat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts the first failure
// into a client error.
func ValidateRequest(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			f := errs[0]
			return apperror.BadRequest(fmt.Sprintf("field '%s' failed validation on '%s'", f.Field(), f.Tag()))
		}
		return apperror.BadRequest(err.Error())
	}
	return nil
}
