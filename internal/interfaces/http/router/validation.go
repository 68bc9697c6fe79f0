package router

import (
	"github.com/agro/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidations installs custom validation tags on gin's binding
// engine. Safe to call more than once.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currency", validCurrency)
}

// validCurrency accepts the currencies the financial pipeline can normalize.
// The empty string passes so callers can rely on omitempty semantics.
func validCurrency(fl validator.FieldLevel) bool {
	_, err := valueobject.ParseCurrency(fl.Field().String())
	return err == nil
}
