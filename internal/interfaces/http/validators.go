package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"habita/internal/domain/listing"
	"habita/internal/domain/plan"
)

// RegisterValidations installs domain-aware binding rules on gin's validator
// so request structs can declare them in binding tags.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("plantype", func(fl validator.FieldLevel) bool {
		return plan.Type(fl.Field().String()).IsValid()
	})

	v.RegisterValidation("listingstatus", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || listing.Status(s).IsValid()
	})
}
