package date

import "fmt"

// Range represents a range of days, both boundaries included.
type Range struct{ From, To Date }

// NewRange returns the period that contains d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains reports whether date is in the range.
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Period returns the period of this range if it is a standard one.
func (r Range) Period() (p Period, ok bool) {
	for _, p := range []Period{Daily, Weekly, Monthly, Quarterly, Yearly} {
		if NewRange(r.From, p) == r {
			return p, true
		}
	}
	return Daily, false
}

// String names the range, e.g. "2025-09" for a month.
func (r Range) String() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		year, week := r.From.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	default:
		return r.From.Format("2006")
	}
}
