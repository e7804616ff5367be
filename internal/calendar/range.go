package calendar

import (
	"fmt"
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Range is a half-open [Start, End) span of calendar days.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day drops the time of day from t and returns the date as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func New(start, end time.Time) (Range, error) {
	r := Range{Start: Day(start), End: Day(end)}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}

	return r, nil
}

// Parse builds a range from two YYYY-MM-DD dates.
func Parse(start, end string) (Range, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return Range{}, newInvalidRangeError(Range{}, fmt.Sprintf("unparsable start date %q", start))
	}

	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return Range{}, newInvalidRangeError(Range{}, fmt.Sprintf("unparsable end date %q", end))
	}

	return New(from, to)
}

func (r Range) normalized() Range {
	return Range{Start: Day(r.Start), End: Day(r.End)}
}

func (r Range) Validate() error {
	n := r.normalized()
	if !n.Start.Before(n.End) {
		return newInvalidRangeError(r, "end must be after start")
	}

	return nil
}

func (r Range) Equal(o Range) bool {
	a, b := r.normalized(), o.normalized()

	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}

// Contains reports whether the calendar day of t falls inside r.
func (r Range) Contains(t time.Time) bool {
	n := r.normalized()
	d := Day(t)

	return !d.Before(n.Start) && d.Before(n.End)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// Overlaps reports whether a and b share at least one day. Invalid ranges never overlap.
func Overlaps(a, b Range) bool {
	if a.Validate() != nil || b.Validate() != nil {
		return false
	}

	na, nb := a.normalized(), b.normalized()

	return na.Start.Before(nb.End) && nb.Start.Before(na.End)
}

func Intersect(a, b Range) (Range, bool) {
	if !Overlaps(a, b) {
		return Range{}, false
	}

	na, nb := a.normalized(), b.normalized()

	res := na
	if nb.Start.After(res.Start) {
		res.Start = nb.Start
	}

	if nb.End.Before(res.End) {
		res.End = nb.End
	}

	return res, true
}

// DayCount returns the number of nights in r.
func DayCount(r Range) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	n := r.normalized()

	return int((n.End.Sub(n.Start) + day - 1) / day), nil
}

// Days lists every calendar day of r in ascending order.
func Days(r Range) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	n := r.normalized()

	var days []time.Time
	for d := n.Start; d.Before(n.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return days, nil
}

// Merge sorts ranges and collapses the ones that overlap or touch.
func Merge(ranges []Range) ([]Range, error) {
	sorted := make([]Range, 0, len(ranges))

	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return nil, err
		}

		sorted = append(sorted, r.normalized())
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var merged []Range

	for _, r := range sorted {
		last := len(merged) - 1
		if last >= 0 && !r.Start.After(merged[last].End) {
			if r.End.After(merged[last].End) {
				merged[last].End = r.End
			}

			continue
		}

		merged = append(merged, r)
	}

	return merged, nil
}

// Subtract returns the ordered gaps of a left uncovered by covering.
// The covering ranges may be unsorted and may overlap each other.
func Subtract(a Range, covering []Range) ([]Range, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	merged, err := Merge(covering)
	if err != nil {
		return nil, fmt.Errorf("merge covering ranges: %w", err)
	}

	n := a.normalized()
	cursor := n.Start

	var gaps []Range

	for _, c := range merged {
		if !c.End.After(cursor) {
			continue
		}

		if !c.Start.Before(n.End) {
			break
		}

		if c.Start.After(cursor) {
			gaps = append(gaps, Range{Start: cursor, End: c.Start})
		}

		cursor = c.End
	}

	if cursor.Before(n.End) {
		gaps = append(gaps, Range{Start: cursor, End: n.End})
	}

	return gaps, nil
}
