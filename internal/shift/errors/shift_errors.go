package shifterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrShiftNotAssigned = apperror.New(
		apperror.CodeInvalidState,
		"employee has no resolvable shift",
		http.StatusUnprocessableEntity,
	)
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift not found",
		http.StatusNotFound,
	)
)
