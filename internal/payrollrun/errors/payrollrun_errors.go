package payrollrunerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"processing session not found",
		http.StatusNotFound,
	)
	ErrSessionAlreadyRunning = apperror.New(
		apperror.CodeConflict,
		"a processing session is already running for this period",
		http.StatusConflict,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrSessionNotRunning = apperror.New(
		apperror.CodeInvalidState,
		"processing session is not running",
		http.StatusBadRequest,
	)
)
