package payroll

import (
	"encoding/json"

	"github.com/google/uuid"
)

func toEntity(employeeID, periodID string, result PayrollResult) (*Payroll, error) {
	otHours, err := json.Marshal(result.OvertimeHoursByType)
	if err != nil {
		return nil, err
	}
	otRates, err := json.Marshal(result.OvertimeRatesByType)
	if err != nil {
		return nil, err
	}
	otPay, err := json.Marshal(result.OvertimePayByType)
	if err != nil {
		return nil, err
	}
	allowances, err := json.Marshal(result.Allowances)
	if err != nil {
		return nil, err
	}
	deductions, err := json.Marshal(result.Deductions)
	if err != nil {
		return nil, err
	}

	return &Payroll{
		EmployeeID:      uuid.MustParse(employeeID),
		PayrollPeriodID: uuid.MustParse(periodID),

		RegularHours:      result.RegularHours,
		RegularHourlyRate: result.RegularHourlyRate,
		BasePay:           result.BasePay,

		OvertimeHoursByType: otHours,
		OvertimeRatesByType: otRates,
		OvertimePayByType:   otPay,
		TotalOvertimeHours:  result.TotalOvertimeHours,
		TotalOvertimePay:    result.TotalOvertimePay,

		Allowances:      allowances,
		TotalAllowances: result.TotalAllowances,
		Deductions:      deductions,
		TotalDeductions: result.TotalDeductions,

		SickLeaveDays:     result.SickLeaveDays,
		BusinessLeaveDays: result.BusinessLeaveDays,
		AnnualLeaveDays:   result.AnnualLeaveDays,
		UnpaidLeaveDays:   result.UnpaidLeaveDays,
		Holidays:          result.Holidays,

		TotalWorkingDays: result.TotalWorkingDays,
		TotalPresent:     result.TotalPresent,
		TotalAbsent:      result.TotalAbsent,
		TotalLateMinutes: result.TotalLateMinutes,
		EarlyDepartures:  result.EarlyDepartures,

		NetPayable: result.NetPayable,
		Status:     result.Status,
	}, nil
}

func toResult(row *Payroll) PayrollResult {
	result := PayrollResult{
		RegularHours:       row.RegularHours,
		RegularHourlyRate:  row.RegularHourlyRate,
		BasePay:            row.BasePay,
		TotalOvertimeHours: row.TotalOvertimeHours,
		TotalOvertimePay:   row.TotalOvertimePay,
		TotalAllowances:    row.TotalAllowances,
		TotalDeductions:    row.TotalDeductions,
		SickLeaveDays:      row.SickLeaveDays,
		BusinessLeaveDays:  row.BusinessLeaveDays,
		AnnualLeaveDays:    row.AnnualLeaveDays,
		UnpaidLeaveDays:    row.UnpaidLeaveDays,
		Holidays:           row.Holidays,
		TotalWorkingDays:   row.TotalWorkingDays,
		TotalPresent:       row.TotalPresent,
		TotalAbsent:        row.TotalAbsent,
		TotalLateMinutes:   row.TotalLateMinutes,
		EarlyDepartures:    row.EarlyDepartures,
		NetPayable:         row.NetPayable,
		Status:             row.Status,
	}

	// Stored JSONB columns are written by us from the same structs; a decode
	// failure would mean a corrupted row, which zero values surface loudly.
	_ = json.Unmarshal(row.OvertimeHoursByType, &result.OvertimeHoursByType)
	_ = json.Unmarshal(row.OvertimeRatesByType, &result.OvertimeRatesByType)
	_ = json.Unmarshal(row.OvertimePayByType, &result.OvertimePayByType)
	_ = json.Unmarshal(row.Allowances, &result.Allowances)
	_ = json.Unmarshal(row.Deductions, &result.Deductions)

	return result
}

func toResponse(row *Payroll, period *PayrollPeriod) PayrollResponse {
	return PayrollResponse{
		ID:              row.ID.String(),
		EmployeeID:      row.EmployeeID.String(),
		PayrollPeriodID: row.PayrollPeriodID.String(),
		PeriodStart:     period.StartDate.Format("2006-01-02"),
		PeriodEnd:       period.EndDate.Format("2006-01-02"),
		Result:          toResult(row),
	}
}
