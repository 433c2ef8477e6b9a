// Package date handles calendar days as bills see them: in Indian Standard Time.
package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Location is the time zone bills are dated in. India has no daylight saving
// time, a fixed zone is exact and does not need the tz database.
var Location = time.FixedZone("IST", 5*60*60+30*60)

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the day t falls on in Location.
func Of(t time.Time) Date { return New(t.In(Location).Date()) }

// Today returns the current date.
func Today() Date { return Of(time.Now()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int                   { return d.y }
func (d Date) Month() time.Month           { return d.m }
func (d Date) Day() int                    { return d.d }
func (d Date) Weekday() time.Weekday       { return d.time().Weekday() }
func (d Date) IsZero() bool                { return d == Date{} }
func (d Date) Before(x Date) bool          { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool           { return d.time().After(x.time()) }
func (d Date) Add(days int) Date           { return New(d.y, d.m, d.d+days) }
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// StartOf returns the first day of the period d is in. Weeks start on Monday.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		offset := int(d.Weekday() - time.Monday)
		if offset < 0 {
			offset += 7
		}
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+1, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the last day of the period d is in.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+4, 0) // day 0 is the last day of the previous month
	case Yearly:
		return New(d.y+1, time.January, 0)
	default:
		panic("unknown period")
	}
}

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// Parse parses a Date. Besides "2025-7-1" it accepts "today" and relative
// dates from today such as "-1d", "-2w", "-1m" or "-1y".
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "today" || str == "0d" {
		return Today(), nil
	}
	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		n, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			n = -n
		}
		t := Today()
		switch match[3] {
		case "d":
			return t.Add(n), nil
		case "w":
			return t.Add(7 * n), nil
		case "m":
			return New(t.y, t.m+time.Month(n), t.d), nil
		case "y":
			return New(t.y+n, t.m, t.d), nil
		}
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
