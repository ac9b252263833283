package shift

// Well-known shift codes shipped with the system. The resolver consults this
// catalog before the cache and storage, so the common case never touches the
// database.
var catalog = map[string]Shift{
	"DAY": {
		Code:      "DAY",
		Name:      "Day Shift",
		StartTime: "09:00",
		EndTime:   "17:00",
		WorkDays:  "1,2,3,4,5",
	},
	"EARLY": {
		Code:      "EARLY",
		Name:      "Early Shift",
		StartTime: "07:00",
		EndTime:   "15:00",
		WorkDays:  "1,2,3,4,5",
	},
	"LATE": {
		Code:      "LATE",
		Name:      "Late Shift",
		StartTime: "13:00",
		EndTime:   "21:00",
		WorkDays:  "1,2,3,4,5",
	},
	"RETAIL": {
		Code:      "RETAIL",
		Name:      "Retail Shift",
		StartTime: "10:00",
		EndTime:   "18:00",
		WorkDays:  "0,2,3,4,5,6",
	},
}

// CatalogShift returns a built-in shift by code.
func CatalogShift(code string) (Shift, bool) {
	s, ok := catalog[code]
	return s, ok
}
