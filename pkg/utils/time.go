package utils

import "time"

const (
	// TimestampLayout is the layout of createdTime/updatedTime attributes.
	TimestampLayout = "2006/01/02 15:04:05"

	// LimitDateLayout is the layout of the channel token expiry attribute.
	LimitDateLayout = "2006-01-02 15:04:05-0700"

	// DateLayout is the layout of reservation days and remind dates.
	DateLayout = "2006-01-02"

	// MonthLayout is the layout of the reservedYearMonth index key.
	MonthLayout = "2006-01"
)

// jst is the zone all user-facing dates and timestamps are computed in.
var jst = loadJST()

func loadJST() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		// Lambda images without tzdata still need a correct offset.
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// NowJST returns the current time in Asia/Tokyo
func NowJST() time.Time {
	return time.Now().In(jst)
}

// Timestamp formats t for the createdTime/updatedTime attributes
func Timestamp(t time.Time) string {
	return t.In(jst).Format(TimestampLayout)
}

// Today returns the current date in Asia/Tokyo as YYYY-MM-DD
func Today() string {
	return NowJST().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in Asia/Tokyo
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, jst)
}

// ParseYearMonth parses a YYYY-MM month in Asia/Tokyo
func ParseYearMonth(s string) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, s, jst)
}

// FormatLimitDate formats a token expiry timestamp
func FormatLimitDate(t time.Time) string {
	return t.In(jst).Format(LimitDateLayout)
}

// ParseLimitDate parses a token expiry timestamp. The result carries its
// own zone offset and is directly comparable to NowJST.
func ParseLimitDate(s string) (time.Time, error) {
	return time.Parse(LimitDateLayout, s)
}

// ExpirationTime computes the TTL attribute for a reservation record: one
// month past the reservation day, as epoch seconds.
func ExpirationTime(day time.Time) int64 {
	return day.AddDate(0, 1, 0).Unix()
}
