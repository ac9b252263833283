package payroll_test

import (
	"testing"

	"go-payroll/internal/payroll"
	"go-payroll/internal/settings"

	"github.com/stretchr/testify/assert"
)

func preAdjustmentResult() payroll.PayrollResult {
	result := payroll.PayrollResult{
		RegularHours:      160,
		RegularHourlyRate: 62.5,
		BasePay:           10000,
		OvertimePayByType: payroll.BucketAmounts{WorkdayOutside: 468.75},
		TotalOvertimePay:  468.75,
		Allowances:        payroll.AllowanceAmounts{Transportation: 1000, Meal: 600},
		TotalAllowances:   1600,
		Deductions:        payroll.DeductionAmounts{SocialSecurity: 500, Tax: 200},
		TotalDeductions:   700,
		Status:            payroll.StatusDraft,
	}
	result.NetPayable = result.BasePay + result.TotalOvertimePay + result.TotalAllowances - result.TotalDeductions
	return result
}

func TestApplyProbation(t *testing.T) {
	cfg := settings.ProbationConfig{
		BasePayAdjustmentRate: 0.9,
		OvertimeEligible:      true,
		AllowancesEligible:    true,
	}

	t.Run("reduces base pay only", func(t *testing.T) {
		adjusted := payroll.ApplyProbation(preAdjustmentResult(), cfg)

		assert.Equal(t, 9000.0, adjusted.BasePay)
		assert.Equal(t, 468.75, adjusted.TotalOvertimePay)
		assert.Equal(t, 1600.0, adjusted.TotalAllowances)
		assert.Equal(t, 700.0, adjusted.TotalDeductions)
		assert.Equal(t, 9000.0+468.75+1600.0-700.0, adjusted.NetPayable)
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := payroll.ApplyProbation(preAdjustmentResult(), cfg)
		twice := payroll.ApplyProbation(once, cfg)

		assert.Equal(t, once, twice)
	})

	t.Run("zeroes overtime when not eligible", func(t *testing.T) {
		noOvertime := cfg
		noOvertime.OvertimeEligible = false

		adjusted := payroll.ApplyProbation(preAdjustmentResult(), noOvertime)

		assert.Equal(t, payroll.BucketAmounts{}, adjusted.OvertimePayByType)
		assert.Equal(t, 0.0, adjusted.TotalOvertimePay)
		assert.Equal(t, 9000.0+1600.0-700.0, adjusted.NetPayable)
	})

	t.Run("zeroes allowances when not eligible", func(t *testing.T) {
		noAllowances := cfg
		noAllowances.AllowancesEligible = false

		adjusted := payroll.ApplyProbation(preAdjustmentResult(), noAllowances)

		assert.Equal(t, payroll.AllowanceAmounts{}, adjusted.Allowances)
		assert.Equal(t, 0.0, adjusted.TotalAllowances)
		assert.Equal(t, 9000.0+468.75-700.0, adjusted.NetPayable)
	})
}
