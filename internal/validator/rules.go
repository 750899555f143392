package validator

import (
	"log"
	"time"

	"restaurant_backend/internal/config"
	"restaurant_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'hhmm': reservation time such as "19:30"
	mustRegister("hhmm", validateHHMM)

	// 'business-role': owner or operator
	mustRegister("business-role", validateBusinessRole)

	// 'upload-category': a directory under uploads/
	mustRegister("upload-category", validateUploadCategory)
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func validateBusinessRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.BusinessRole(value).IsValid()
}

func validateUploadCategory(fl validator.FieldLevel) bool {
	_, ok := config.UploadCategories[fl.Field().String()]
	return ok
}
