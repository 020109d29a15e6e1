package ledger

import (
	"time"
)

// Free - true, если candidate не пересекается ни с одним из занятых интервалов
func Free(booked []Interval, candidate Interval) bool {
	for _, b := range booked {
		if Overlaps(b, candidate) {
			return false
		}
	}

	return true
}

// FullyBooked сообщает, что ни одно время сетки не допускает бронь длиной probeHours.
// Для индикатора в календаре используется probeHours = 1.
func FullyBooked(booked []Interval, probeHours int) bool {
	if len(booked) == 0 {
		return false
	}

	for m := 0; m < minutesPerDay; m += gridStep {
		if Free(booked, Interval{Start: m, End: m + probeHours*minutesPerHour}) {
			return false
		}
	}

	return true
}

// AvailableDurations возвращает длительности из 1..12, для которых
// хотя бы одно время сетки свободно
func AvailableDurations(booked []Interval) []int {
	hours := make([]int, 0, MaxHours)
	for h := MinHours; h <= MaxHours; h++ {
		if len(AvailableStartTimes(booked, h)) > 0 {
			hours = append(hours, h)
		}
	}

	return hours
}

// AvailableStartTimes возвращает времена сетки, с которых можно забронировать ровно hours часов
func AvailableStartTimes(booked []Interval, hours int) []string {
	starts := make([]string, 0, minutesPerDay/gridStep)
	for m := 0; m < minutesPerDay; m += gridStep {
		if Free(booked, Interval{Start: m, End: m + hours*minutesPerHour}) {
			starts = append(starts, FormatClock(m))
		}
	}

	return starts
}

// FullyBookedDates проходит по горизонту из days дней начиная с from
// и возвращает даты, полностью занятые для пробы probeHours
func FullyBookedDates(byDate map[string][]Interval, from time.Time, days, probeHours int) []string {
	dates := make([]string, 0)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format(DateLayout)
		if FullyBooked(byDate[date], probeHours) {
			dates = append(dates, date)
		}
	}

	return dates
}
