package utils

import (
	"os"
	"time"
)

// The hotel runs on a single fixed time zone; every "day" boundary in the
// system (cleaning records, inspections, snapshots, score rewards) is
// computed here and nowhere else.
var hotelLocation *time.Location

func init() {
	tz := os.Getenv("HOTEL_TZ")
	if tz == "" {
		tz = "Asia/Phnom_Penh"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	hotelLocation = loc
}

// HotelLocation returns the fixed hotel time zone.
func HotelLocation() *time.Location {
	return hotelLocation
}

// HotelNow returns the current time in the hotel time zone.
func HotelNow() time.Time {
	return time.Now().In(hotelLocation)
}

// StartOfDay returns midnight of t's calendar day in the hotel time zone.
func StartOfDay(t time.Time) time.Time {
	local := t.In(hotelLocation)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, hotelLocation)
}

// DayRange returns [start, end) covering t's calendar day.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}
