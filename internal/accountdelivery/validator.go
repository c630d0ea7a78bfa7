package accountdelivery

import (
	"github.com/go-dmitri/pocket-bank/pkg/currencypkg"
	"github.com/go-playground/validator/v10"
)

// ValidCurrency checks that the bound value names a supported currency.
var ValidCurrency validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if currency, ok := fieldLevel.Field().Interface().(string); ok {
		return currencypkg.IsSupportedCurrency(currency)
	}

	return false
}
