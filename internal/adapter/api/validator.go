package api

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"rewear/internal/domain/entity"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports fields by their json names and knows the "category" tag.
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.IsValidCategory(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
