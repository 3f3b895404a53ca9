package validator

import (
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// data_format must be one of the converter tags the schedulers know how
	// to dispatch. Empty is allowed: enterprises are created before their
	// feed is wired up.
	validate.RegisterValidation("data_format", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "json_feed", "xml_feed", "excel_drive", "csv_ftp", "rest_api":
			return true
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
