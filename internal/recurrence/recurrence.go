// Package recurrence expands compact recurrence rules
// (FREQ=WEEKLY;BYDAY=MO,WE,FR;...) into concrete event occurrences
// within a query window. Expansion is always window-bounded: an
// open-ended rule is never materialized past the window end.
package recurrence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// maxOccurrences caps expansion of a single series so a pathological
// rule/window pair cannot blow up a request.
const maxOccurrences = 1000

var ErrMalformedRule = errors.New("malformed recurrence rule")

type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

// Rule is a parsed recurrence rule. Count == 0 means no count limit;
// Until == nil means no end date; a rule with neither is open-ended.
type Rule struct {
	Freq     Frequency
	Interval int
	ByDay    []rrule.Weekday
	Count    int
	Until    *time.Time
}

// Occurrence is one concrete instance of a recurring event.
type Occurrence struct {
	Start time.Time `json:"start_at"`
	End   time.Time `json:"end_at"`
}

var weekdays = map[string]rrule.Weekday{
	"MO": rrule.MO, "TU": rrule.TU, "WE": rrule.WE,
	"TH": rrule.TH, "FR": rrule.FR, "SA": rrule.SA, "SU": rrule.SU,
}

// ParseRule parses a FREQ=...;KEY=VALUE rule string. Unknown keys,
// unknown frequency tokens, COUNT <= 0 and INTERVAL <= 0 are rejected.
// COUNT and UNTIL are mutually exclusive per RFC 5545.
func ParseRule(s string) (*Rule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty rule", ErrMalformedRule)
	}

	rule := &Rule{Interval: 1}
	seenFreq := false

	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found || value == "" {
			return nil, fmt.Errorf("%w: expected KEY=VALUE, got %q", ErrMalformedRule, part)
		}

		switch strings.ToUpper(key) {
		case "FREQ":
			switch Frequency(strings.ToUpper(value)) {
			case Daily:
				rule.Freq = Daily
			case Weekly:
				rule.Freq = Weekly
			case Monthly:
				rule.Freq = Monthly
			default:
				return nil, fmt.Errorf("%w: unsupported frequency %q", ErrMalformedRule, value)
			}
			seenFreq = true

		case "INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: INTERVAL must be a positive integer, got %q", ErrMalformedRule, value)
			}
			rule.Interval = n

		case "BYDAY":
			for _, tok := range strings.Split(value, ",") {
				wd, ok := weekdays[strings.ToUpper(tok)]
				if !ok {
					return nil, fmt.Errorf("%w: unknown weekday %q", ErrMalformedRule, tok)
				}
				rule.ByDay = append(rule.ByDay, wd)
			}

		case "COUNT":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: COUNT must be a positive integer, got %q", ErrMalformedRule, value)
			}
			rule.Count = n

		case "UNTIL":
			t, err := parseUntil(value)
			if err != nil {
				return nil, fmt.Errorf("%w: bad UNTIL %q", ErrMalformedRule, value)
			}
			rule.Until = &t

		default:
			return nil, fmt.Errorf("%w: unknown key %q", ErrMalformedRule, key)
		}
	}

	if !seenFreq {
		return nil, fmt.Errorf("%w: FREQ is required", ErrMalformedRule)
	}
	if rule.Count > 0 && rule.Until != nil {
		return nil, fmt.Errorf("%w: COUNT and UNTIL are mutually exclusive", ErrMalformedRule)
	}

	return rule, nil
}

func parseUntil(value string) (time.Time, error) {
	for _, layout := range []string{"20060102T150405Z", "20060102", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized UNTIL format")
}

// Validate checks constraints that depend on the base event:
// an UNTIL before the series start can never produce an occurrence and
// is treated as a caller error.
func (r *Rule) Validate(baseStart time.Time) error {
	if r.Until != nil && r.Until.Before(baseStart) {
		return fmt.Errorf("%w: UNTIL is before the series start", ErrMalformedRule)
	}
	return nil
}

// Expand produces the ordered occurrences of the series defined by
// (baseStart, baseEnd, rule) that overlap [from, to]. The base start is
// an occurrence only when it satisfies the rule's filters (RFC 5545
// DTSTART semantics as implemented by rrule-go). The sequence is
// truncated at maxOccurrences.
func Expand(baseStart, baseEnd time.Time, rule *Rule, from, to time.Time) ([]Occurrence, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("query window end precedes its start")
	}
	if err := rule.Validate(baseStart); err != nil {
		return nil, err
	}

	duration := baseEnd.Sub(baseStart)
	if duration < 0 {
		return nil, fmt.Errorf("event end precedes event start")
	}

	opts := rrule.ROption{
		Freq:      freqOf(rule.Freq),
		Interval:  rule.Interval,
		Byweekday: rule.ByDay,
		Count:     rule.Count,
		Dtstart:   baseStart,
	}
	if rule.Until != nil {
		opts.Until = *rule.Until
	}

	r, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRule, err)
	}

	// Widen the lower bound by the event duration so an occurrence that
	// starts before the window but overlaps it is still returned.
	starts := r.Between(from.Add(-duration), to, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := make([]Occurrence, 0, len(starts))
	for _, start := range starts {
		end := start.Add(duration)
		if !overlaps(start, end, from, to) {
			continue
		}
		out = append(out, Occurrence{Start: start, End: end})
	}
	return out, nil
}

func freqOf(f Frequency) rrule.Frequency {
	switch f {
	case Daily:
		return rrule.DAILY
	case Monthly:
		return rrule.MONTHLY
	default:
		return rrule.WEEKLY
	}
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
