package payroll

import "go-payroll/internal/settings"

// ApplyProbation rewrites a calculated result with probation terms. It is
// idempotent: base pay is recomputed from the hourly rate and regular hours
// carried in the result, so applying it twice yields the same numbers.
func ApplyProbation(result PayrollResult, cfg settings.ProbationConfig) PayrollResult {
	result.BasePay = result.RegularHourlyRate * result.RegularHours * cfg.BasePayAdjustmentRate

	if !cfg.OvertimeEligible {
		result.OvertimePayByType = BucketAmounts{}
		result.TotalOvertimePay = 0
	} else {
		result.TotalOvertimePay = result.OvertimePayByType.Total()
	}

	if !cfg.AllowancesEligible {
		result.Allowances = AllowanceAmounts{}
		result.TotalAllowances = 0
	} else {
		result.TotalAllowances = result.Allowances.Total()
	}

	result.TotalDeductions = result.Deductions.Total()
	result.NetPayable = result.BasePay + result.TotalOvertimePay + result.TotalAllowances - result.TotalDeductions

	return result
}
