package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Student is the 2.0 students JSON shape. Optional fields serialize as null
// when the export had no value.
type Student struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	FullName   string  `json:"fullName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	City       *string `json:"city"`
	Notes      *string `json:"notes"`
	Instrument string  `json:"instrument"`
}

// ICal carries the recurrence fields consumed by the 2.0 scheduler.
type ICal struct {
	DTStart string `json:"DTSTART"`
	TZID    string `json:"TZID"`
	RRule   string `json:"RRULE"`
}

// ScheduleEntry is one weekly lesson slot for a student.
type ScheduleEntry struct {
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	Email       string  `json:"email"`
	DayOfWeek   string  `json:"dayOfWeek"`
	StartTime   string  `json:"startTime"`
	DurationMin int     `json:"durationMin"`
	Timezone    string  `json:"timezone"`
	Frequency   string  `json:"frequency"`
	ICal        ICal    `json:"ical"`
	Notes       *string `json:"notes"`
}

// Legacy exports use Dutch day names and abbreviations; some re-imports
// already carry English ones.
var dayCodes = map[string]string{
	"ma": "MO", "maandag": "MO", "monday": "MO",
	"di": "TU", "dinsdag": "TU", "tuesday": "TU",
	"wo": "WE", "woensdag": "WE", "wednesday": "WE",
	"do": "TH", "donderdag": "TH", "thursday": "TH",
	"vr": "FR", "vrijdag": "FR", "friday": "FR",
	"za": "SA", "zaterdag": "SA", "saturday": "SA",
	"zo": "SU", "zondag": "SU", "sunday": "SU",
}

var weekdayOrder = []string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// ConvertStudents maps the full student export to student records plus weekly
// schedule entries. now anchors the DTSTART of each recurrence (the next
// occurrence of the slot's weekday, never today) so the conversion is
// reproducible under test. onRow, when non-nil, is called once per row.
func ConvertStudents(rows []map[string]string, now time.Time, timezone string, onRow func()) ([]Student, []ScheduleEntry) {
	students := make([]Student, 0, len(rows))
	var schedule []ScheduleEntry

	for n, row := range rows {
		id := safeGet(row, "stid")
		if id == "" {
			id = strconv.Itoa(n + 1)
		}
		firstName := safeGet(row, "stVoornaam")
		lastName := safeGet(row, "stNaam")
		email := safeGet(row, "stEmail")
		notes := safeGet(row, "stOpmerkingen")
		fullName := strings.TrimSpace(firstName + " " + lastName)

		students = append(students, Student{
			ID:         id,
			FirstName:  firstName,
			LastName:   lastName,
			FullName:   fullName,
			Email:      optional(email),
			Phone:      optional(safeGet(row, "stTelefoonmobiel", "stTelefoonvast")),
			City:       optional(safeGet(row, "stWoonplaats")),
			Notes:      optional(notes),
			Instrument: "drums",
		})

		// Up to two weekly lesson slots per student.
		for i := 1; i <= 2; i++ {
			dayRaw := safeGet(row, fmt.Sprintf("stLesdag%d", i))
			timeRaw := safeGet(row, fmt.Sprintf("stLestijd%d", i))
			if dayRaw == "" || timeRaw == "" {
				continue
			}

			dayCode, ok := dayCodes[strings.ToLower(strings.TrimSpace(dayRaw))]
			if !ok {
				continue
			}
			hours, minutes, ok := parseLessonTime(timeRaw)
			if !ok {
				continue
			}

			duration := 30
			if d := safeGet(row, fmt.Sprintf("stLesduur%d", i)); d != "" {
				if parsed, err := strconv.Atoi(d); err == nil {
					duration = parsed
				}
			}

			startTime := fmt.Sprintf("%02d:%02d", hours, minutes)
			next := nextOccurrence(now, dayCode)
			schedule = append(schedule, ScheduleEntry{
				StudentID:   id,
				StudentName: fullName,
				Email:       email,
				DayOfWeek:   dayCode,
				StartTime:   startTime,
				DurationMin: duration,
				Timezone:    timezone,
				Frequency:   "WEEKLY",
				ICal: ICal{
					DTStart: fmt.Sprintf("%sT%02d%02d00", next.Format("20060102"), hours, minutes),
					TZID:    timezone,
					RRule:   fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;BYHOUR=%d;BYMINUTE=%d;BYSECOND=0", dayCode, hours, minutes),
				},
				Notes: optional(notes),
			})
		}

		if onRow != nil {
			onRow()
		}
	}

	return students, schedule
}

// parseLessonTime accepts "15:30" and the legacy "15.30" form.
func parseLessonTime(raw string) (hours, minutes int, ok bool) {
	clean := strings.ReplaceAll(raw, ".", ":")
	parts := strings.Split(clean, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// nextOccurrence returns the next date falling on the given weekday code,
// at least one day after now.
func nextOccurrence(now time.Time, dayCode string) time.Time {
	target := 0
	for i, code := range weekdayOrder {
		if code == dayCode {
			target = i
			break
		}
	}

	// time.Weekday counts from Sunday; the schedule counts from Monday.
	current := (int(now.Weekday()) + 6) % 7
	ahead := (target - current + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
