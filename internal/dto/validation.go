package dto

import (
	"fmt"

	"github.com/SscSPs/time_clock_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding rules on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("clock_action", validateClockAction)
}

func validateClockAction(fl validator.FieldLevel) bool {
	_, err := domain.ParseAction(fl.Field().String())
	return err == nil
}
