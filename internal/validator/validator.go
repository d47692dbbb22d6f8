// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"rebalancer/internal/allocation"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("brokerage", validateBrokerage)
		_ = v.RegisterValidation("region_label", validateRegionLabel)
		_ = v.RegisterValidation("category_label", validateCategoryLabel)
	}
}

func validateBrokerage(fl validator.FieldLevel) bool {
	_, ok := allocation.ParseBrokerage(fl.Field().String())
	return ok
}

func validateRegionLabel(fl validator.FieldLevel) bool {
	return allocation.ValidLabel(allocation.DimensionRegion, fl.Field().String())
}

func validateCategoryLabel(fl validator.FieldLevel) bool {
	return allocation.ValidLabel(allocation.DimensionCategory, fl.Field().String())
}
