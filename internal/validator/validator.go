// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"folio/internal/models"
)

// symbolRegex matches a normalized ticker or coin code: 1-10 characters,
// letters, digits, and periods only.
var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9.]{1,10}$`)

// supportedCurrencies is the fixed set of quote currencies assets may carry.
var supportedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"JPY": true,
	"TWD": true,
	"CNY": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("asset_type", func(fl validator.FieldLevel) bool {
		return models.AssetType(fl.Field().String()).Valid()
	})

	_ = v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
		return symbolRegex.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("folio_currency", func(fl validator.FieldLevel) bool {
		return supportedCurrencies[fl.Field().String()]
	})
}
