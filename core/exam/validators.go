package exam

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/selfcare/core"
)

var (
	// custom validation tags & texts
	paymentStatusTag  = "payment_status"
	paymentStatusText = "must be one of paid, pending or free"

	finalStatusTag  = "final_status"
	finalStatusText = "must be one of selected, not-selected or pending"

	stageStatusTag  = "stage_status"
	stageStatusText = "must be one of pending, cleared, not-cleared, n/a, selected or not-selected"
)

// InitValidators registers the exam validation tags. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(paymentStatusTag, func(fl validator.FieldLevel) bool {
		return PaymentStatus(fl.Field().String()).IsValid()
	})
	core.RegisterCustomTranslation(validate, translator, paymentStatusTag, paymentStatusText)

	_ = validate.RegisterValidation(finalStatusTag, func(fl validator.FieldLevel) bool {
		return FinalStatus(fl.Field().String()).IsValid()
	})
	core.RegisterCustomTranslation(validate, translator, finalStatusTag, finalStatusText)

	_ = validate.RegisterValidation(stageStatusTag, func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).IsKnown()
	})
	core.RegisterCustomTranslation(validate, translator, stageStatusTag, stageStatusText)
}
