package settings

import "go-payroll/internal/employee"

// SystemDefaults is seeded on first read when no settings row exists at all.
// It is the only missing-data condition the resolver recovers locally.
func SystemDefaults() Document {
	return Document{
		EmployeeTypes: map[string]TypeSettings{
			employee.TypeFulltime: {
				OvertimeRates: OvertimeRates{
					WorkdayOutside:  1.5,
					WeekendInside:   1.0,
					WeekendOutside:  3.0,
					HolidayRegular:  2.0,
					HolidayOvertime: 3.0,
				},
				Allowances: Allowances{
					Transportation: 1000,
					Meal:           600,
					Housing:        0,
				},
				SocialSecurity: SocialSecurity{
					Rate:    0.05,
					MinBase: 1650,
					MaxBase: 15000,
				},
			},
			employee.TypeParttime: {
				OvertimeRates: OvertimeRates{
					WorkdayOutside:  1.5,
					WeekendInside:   2.0,
					WeekendOutside:  3.0,
					HolidayRegular:  2.0,
					HolidayOvertime: 3.0,
				},
				Allowances: Allowances{
					Transportation: 1000,
					Meal:           300,
					Housing:        0,
				},
				SocialSecurity: SocialSecurity{
					Rate:    0.05,
					MinBase: 1650,
					MaxBase: 15000,
				},
			},
			employee.TypeProbation: {
				OvertimeRates: OvertimeRates{
					WorkdayOutside:  1.5,
					WeekendInside:   1.0,
					WeekendOutside:  3.0,
					HolidayRegular:  2.0,
					HolidayOvertime: 3.0,
				},
				Allowances: Allowances{
					Transportation: 1000,
					Meal:           600,
					Housing:        0,
				},
				SocialSecurity: SocialSecurity{
					Rate:    0.05,
					MinBase: 1650,
					MaxBase: 15000,
				},
				Probation: &ProbationConfig{
					BasePayAdjustmentRate: 0.9,
					OvertimeEligible:      true,
					AllowancesEligible:    true,
				},
			},
		},
		Rounding: RoundingPolicy{
			MinimumMinutes: 30,
			RoundToMinutes: 30,
		},
		Period: PeriodRules{
			StartDay:      26,
			StandardHours: 160,
			DailyHours:    8,
		},
	}
}
