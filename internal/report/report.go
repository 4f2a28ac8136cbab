// Package report is the aggregation engine: pure functions folding a set of
// already-fetched time records into hours/pay rollups. No I/O, no hidden
// state; running any function twice on the same input yields the same output.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
)

// Totals is the hours/pay sum over a record set. Records that were never
// closed carry no derived fields and contribute zero.
type Totals struct {
	TotalHours float64 `json:"totalHours"`
	TotalPay   float64 `json:"totalPay"`
}

// Sum folds the record set into totals. Empty input yields zero totals.
func Sum(records []domain.TimeRecord) Totals {
	var t Totals
	for i := range records {
		t.TotalHours += records[i].HoursOrZero()
		t.TotalPay += records[i].PayOrZero()
	}
	return t
}

// WorkDays counts the completed records in the set.
func WorkDays(records []domain.TimeRecord) int {
	n := 0
	for i := range records {
		if records[i].Status == domain.RecordCompleted {
			n++
		}
	}
	return n
}

// EmployeeGroup is one employee's slice of a month: every record listed,
// only completed ones summed.
type EmployeeGroup struct {
	Employee   domain.User         `json:"employee"`
	TotalHours float64             `json:"totalHours"`
	TotalPay   float64             `json:"totalPay"`
	Records    []domain.TimeRecord `json:"records"`
}

// GroupByEmployee buckets records by employee id. The employees map supplies
// the profile attached to each group; records whose employee is missing from
// the map still get a group with a bare id. Output is ordered by employee id
// so repeated runs over the same input are stable.
func GroupByEmployee(records []domain.TimeRecord, employees map[uuid.UUID]domain.User) []EmployeeGroup {
	byEmployee := make(map[uuid.UUID]*EmployeeGroup)
	for i := range records {
		rec := records[i]
		g, ok := byEmployee[rec.EmployeeID]
		if !ok {
			g = &EmployeeGroup{}
			if emp, found := employees[rec.EmployeeID]; found {
				g.Employee = emp
			} else {
				g.Employee = domain.User{ID: rec.EmployeeID}
			}
			byEmployee[rec.EmployeeID] = g
		}
		g.Records = append(g.Records, rec)
		g.TotalHours += rec.HoursOrZero()
		g.TotalPay += rec.PayOrZero()
	}

	ids := make([]uuid.UUID, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	groups := make([]EmployeeGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, *byEmployee[id])
	}
	return groups
}

// ArchiveMonth is a company-wide calendar-month rollup.
type ArchiveMonth struct {
	Month               string  `json:"month"`
	TotalHours          float64 `json:"totalHours"`
	TotalPay            float64 `json:"totalPay"`
	EmployeeCount       int     `json:"employeeCount"`
	AvgHoursPerEmployee float64 `json:"avgHoursPerEmployee"`
}

// EmployeeArchiveMonth is the per-employee variant of ArchiveMonth.
type EmployeeArchiveMonth struct {
	Month          string  `json:"month"`
	TotalHours     float64 `json:"totalHours"`
	TotalPay       float64 `json:"totalPay"`
	DaysWorked     int     `json:"daysWorked"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
}

type monthKey struct {
	year  int
	month time.Month
}

func (k monthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.year, int(k.month))
}

func keyOf(t time.Time) monthKey {
	u := t.UTC()
	return monthKey{year: u.Year(), month: u.Month()}
}

// sortedKeysDesc orders month keys newest first.
func sortedKeysDesc(keys []monthKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})
}

// ArchiveMonths groups completed records by calendar month, newest first.
// Non-completed records in the input are ignored.
func ArchiveMonths(records []domain.TimeRecord) []ArchiveMonth {
	type bucket struct {
		totals    Totals
		employees map[uuid.UUID]struct{}
	}
	buckets := make(map[monthKey]*bucket)
	for i := range records {
		rec := records[i]
		if rec.Status != domain.RecordCompleted {
			continue
		}
		k := keyOf(rec.Date)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{employees: make(map[uuid.UUID]struct{})}
			buckets[k] = b
		}
		b.totals.TotalHours += rec.HoursOrZero()
		b.totals.TotalPay += rec.PayOrZero()
		b.employees[rec.EmployeeID] = struct{}{}
	}

	keys := make([]monthKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sortedKeysDesc(keys)

	months := make([]ArchiveMonth, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		m := ArchiveMonth{
			Month:         k.String(),
			TotalHours:    b.totals.TotalHours,
			TotalPay:      b.totals.TotalPay,
			EmployeeCount: len(b.employees),
		}
		if m.EmployeeCount > 0 {
			m.AvgHoursPerEmployee = m.TotalHours / float64(m.EmployeeCount)
		}
		months = append(months, m)
	}
	return months
}

// EmployeeArchiveMonths groups one employee's completed records by calendar
// month, newest first, with days-worked counts instead of employee averaging.
func EmployeeArchiveMonths(records []domain.TimeRecord) []EmployeeArchiveMonth {
	type bucket struct {
		totals Totals
		days   int
	}
	buckets := make(map[monthKey]*bucket)
	for i := range records {
		rec := records[i]
		if rec.Status != domain.RecordCompleted {
			continue
		}
		k := keyOf(rec.Date)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		b.totals.TotalHours += rec.HoursOrZero()
		b.totals.TotalPay += rec.PayOrZero()
		b.days++
	}

	keys := make([]monthKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sortedKeysDesc(keys)

	months := make([]EmployeeArchiveMonth, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		m := EmployeeArchiveMonth{
			Month:      k.String(),
			TotalHours: b.totals.TotalHours,
			TotalPay:   b.totals.TotalPay,
			DaysWorked: b.days,
		}
		if m.DaysWorked > 0 {
			m.AvgHoursPerDay = m.TotalHours / float64(m.DaysWorked)
		}
		months = append(months, m)
	}
	return months
}

// Stats is the employee dashboard summary over their whole history.
type Stats struct {
	TotalHours     float64 `json:"totalHours"`
	TotalEarnings  float64 `json:"totalEarnings"`
	HoursThisWeek  float64 `json:"hoursThisWeek"`
	AttendanceRate int     `json:"attendanceRate"`
}

// workdayStartHour is the cut-off for counting an arrival as on time.
const workdayStartHour = 9

// EmployeeStats derives dashboard figures from the employee's completed
// records. The week starts on Sunday 00:00 UTC of the week containing now;
// with no records at all the attendance rate reads 100.
func EmployeeStats(records []domain.TimeRecord, now time.Time) Stats {
	var s Stats

	u := now.UTC()
	dayStart := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))

	completed := 0
	onTime := 0
	for i := range records {
		rec := records[i]
		if rec.Status != domain.RecordCompleted {
			continue
		}
		completed++
		s.TotalHours += rec.HoursOrZero()
		s.TotalEarnings += rec.PayOrZero()
		if !rec.Date.Before(weekStart) {
			s.HoursThisWeek += rec.HoursOrZero()
		}

		d := rec.Date.UTC()
		cutoff := time.Date(d.Year(), d.Month(), d.Day(), workdayStartHour, 0, 0, 0, time.UTC)
		if !rec.ClockIn.UTC().After(cutoff) {
			onTime++
		}
	}

	if completed > 0 {
		s.AttendanceRate = int(math.Round(float64(onTime) / float64(completed) * 100))
	} else {
		s.AttendanceRate = 100
	}
	return s
}

// MonthWindow returns the closed interval covering the given calendar month:
// UTC midnight on day one through 23:59:59 on the last day.
func MonthWindow(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// DayWindow returns [todayStart, todayStart+24h) for the UTC day containing t.
func DayWindow(t time.Time) (start, end time.Time) {
	u := t.UTC()
	start = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
