package services

import (
	"testing"
	"time"

	"stresshub/models"
)

func weekdaySlot(day int, start, end string) models.Availability {
	return models.Availability{DayOfWeek: day, StartTime: start, EndTime: end, IsAvailable: true}
}

func TestAvailabilityCoversInsideSlot(t *testing.T) {
	// 2026-08-24 is a Monday, day 0 in the Monday-first convention.
	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	slot := weekdaySlot(0, "09:00", "17:00")

	if !AvailabilityCovers(slot, monday, 60) {
		t.Fatal("expected a 10:00 Monday session to fit a 09:00-17:00 Monday slot")
	}
}

func TestAvailabilityCoversWrongDay(t *testing.T) {
	tuesday := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	slot := weekdaySlot(0, "09:00", "17:00")

	if AvailabilityCovers(slot, tuesday, 60) {
		t.Fatal("expected a Tuesday session to miss a Monday slot")
	}
}

func TestAvailabilityCoversSundayMapsToSix(t *testing.T) {
	sunday := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	slot := weekdaySlot(6, "09:00", "17:00")

	if !AvailabilityCovers(slot, sunday, 30) {
		t.Fatal("expected Sunday to map to day 6")
	}
}

func TestAvailabilityCoversBoundaries(t *testing.T) {
	slot := weekdaySlot(0, "09:00", "17:00")

	cases := []struct {
		name     string
		hour     int
		minute   int
		duration int
		want     bool
	}{
		{"starts at slot open", 9, 0, 60, true},
		{"ends exactly at slot close", 16, 0, 60, true},
		{"runs past slot close", 16, 30, 60, false},
		{"starts before slot open", 8, 30, 60, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Date(2026, 8, 24, tc.hour, tc.minute, 0, 0, time.UTC)
			if got := AvailabilityCovers(slot, start, tc.duration); got != tc.want {
				t.Errorf("AvailabilityCovers(%02d:%02d, %dm) = %v, want %v", tc.hour, tc.minute, tc.duration, got, tc.want)
			}
		})
	}
}

func TestAvailabilityCoversDisabledSlot(t *testing.T) {
	slot := weekdaySlot(0, "09:00", "17:00")
	slot.IsAvailable = false

	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	if AvailabilityCovers(slot, monday, 60) {
		t.Fatal("expected a disabled slot to cover nothing")
	}
}

func TestAvailabilityCoversBadClockTime(t *testing.T) {
	slot := models.Availability{DayOfWeek: 0, StartTime: "not-a-time", EndTime: "17:00", IsAvailable: true}

	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	if AvailabilityCovers(slot, monday, 60) {
		t.Fatal("expected malformed slot times to cover nothing")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from models.BookingStatus
		to   models.BookingStatus
		want bool
	}{
		{models.BookingPending, models.BookingApproved, true},
		{models.BookingPending, models.BookingRejected, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingApproved, models.BookingCompleted, true},
		{models.BookingApproved, models.BookingCancelled, true},
		{models.BookingApproved, models.BookingRejected, false},
		{models.BookingRejected, models.BookingApproved, false},
		{models.BookingCancelled, models.BookingPending, false},
		{models.BookingCompleted, models.BookingCancelled, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
