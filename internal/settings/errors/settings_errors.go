package settingserrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrSettingsNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll settings not found",
		http.StatusNotFound,
	)
	ErrMissingOvertimeRatesForType = apperror.New(
		apperror.CodeInvalidState,
		"settings do not define overtime rates for this employee type",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidSettingsDocument = apperror.New(
		apperror.CodeInvalidInput,
		"settings document failed validation",
		http.StatusBadRequest,
	)
)
