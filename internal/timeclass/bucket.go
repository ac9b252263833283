package timeclass

// Bucket names one of the five overtime classifications. Exactly one bucket
// receives the hours of a given overtime window.
type Bucket string

const (
	BucketWorkdayOutside  Bucket = "workday_outside"
	BucketWeekendInside   Bucket = "weekend_inside"
	BucketWeekendOutside  Bucket = "weekend_outside"
	BucketHolidayRegular  Bucket = "holiday_regular"
	BucketHolidayOvertime Bucket = "holiday_overtime"
)

// Buckets returns all buckets in stable order.
func Buckets() []Bucket {
	return []Bucket{
		BucketWorkdayOutside,
		BucketWeekendInside,
		BucketWeekendOutside,
		BucketHolidayRegular,
		BucketHolidayOvertime,
	}
}

// ZeroHours returns a bucket map with every bucket present at zero, so
// downstream serialization always carries all five keys.
func ZeroHours() map[Bucket]float64 {
	hours := make(map[Bucket]float64, 5)
	for _, b := range Buckets() {
		hours[b] = 0
	}
	return hours
}
