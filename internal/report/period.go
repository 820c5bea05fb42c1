// Package report derives the weekly dashboard figures from the ledger.
// Every function is pure over its inputs; callers pass the full ledger and an
// anchor date.
package report

import (
	"fmt"
	"time"
)

const (
	weekDays   = 7
	chartWeeks = 4
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Period is the half-open range of calendar days [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t's calendar day falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := day(t)
	return !d.Before(p.Start) && d.Before(p.End)
}

// Last is the final day of the period.
func (p Period) Last() time.Time {
	return p.End.AddDate(0, 0, -1)
}

// Days is the length of the period in calendar days.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / 24)
}

// Range renders the period as "(dd/mm/yy - dd/mm/yy)".
func (p Period) Range() string {
	return fmt.Sprintf("(%s - %s)", p.Start.Format("02/01/06"), p.Last().Format("02/01/06"))
}

// Title renders the period as "11 Maret 2024 - 17 Maret 2024".
func (p Period) Title() string {
	return longDate(p.Start) + " - " + longDate(p.Last())
}

func longDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// day strips the clock and zone, keeping the calendar date as seen in t's own
// location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReferenceDate returns the date of the most recent entry.
func ReferenceDate(entries []Entry) (time.Time, bool) {
	if len(entries) == 0 {
		return time.Time{}, false
	}
	latest := day(entries[0].Date)
	for _, e := range entries[1:] {
		if d := day(e.Date); d.After(latest) {
			latest = d
		}
	}
	return latest, true
}

// MondayOf returns the Monday on or before t. Sunday is the seventh day of
// its week.
func MondayOf(t time.Time) time.Time {
	d := day(t)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// AuditPeriod is the full week before the week containing ref.
func AuditPeriod(ref time.Time) Period {
	start := MondayOf(ref).AddDate(0, 0, -weekDays)
	return Period{Start: start, End: start.AddDate(0, 0, weekDays)}
}

// PreviousPeriod is the week before the audit period.
func PreviousPeriod(ref time.Time) Period {
	audit := AuditPeriod(ref)
	return Period{Start: audit.Start.AddDate(0, 0, -weekDays), End: audit.Start}
}

// Week is one bucket of the four-week charts.
type Week struct {
	Period
	Label string `json:"label"`
	Range string `json:"range"`
}

// Weeks returns four contiguous weeks, oldest first, the last of which is
// the audit period.
func Weeks(ref time.Time) []Week {
	audit := AuditPeriod(ref)
	weeks := make([]Week, 0, chartWeeks)
	for i := chartWeeks - 1; i >= 0; i-- {
		start := audit.Start.AddDate(0, 0, -i*weekDays)
		p := Period{Start: start, End: start.AddDate(0, 0, weekDays)}
		weeks = append(weeks, Week{
			Period: p,
			Label:  fmt.Sprintf("Week %d", chartWeeks-i),
			Range:  p.Range(),
		})
	}
	return weeks
}

// ShareWindow is the 28-day window ending with the audit period.
func ShareWindow(ref time.Time) Period {
	audit := AuditPeriod(ref)
	return Period{Start: audit.End.AddDate(0, 0, -chartWeeks*weekDays), End: audit.End}
}
