package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *Rule {
	t.Helper()
	rule, err := ParseRule(s)
	require.NoError(t, err)
	return rule
}

func utc(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestParseRuleRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"FREQ=FORTNIGHTLY",
		"FREQ=YEARLY",
		"BYDAY=MO",               // missing FREQ
		"FREQ=WEEKLY;COUNT=0",
		"FREQ=WEEKLY;COUNT=-3",
		"FREQ=WEEKLY;INTERVAL=0",
		"FREQ=WEEKLY;BYDAY=XX",
		"FREQ=WEEKLY;NONSENSE=1",
		"FREQ=WEEKLY;COUNT=",
		"FREQ=DAILY;UNTIL=someday",
		"FREQ=DAILY;COUNT=3;UNTIL=20251231",
	}
	for _, tc := range cases {
		_, err := ParseRule(tc)
		assert.ErrorIs(t, err, ErrMalformedRule, "rule %q", tc)
	}
}

func TestParseRuleFields(t *testing.T) {
	rule := mustParse(t, "FREQ=WEEKLY;BYDAY=MO,WE,FR;INTERVAL=2;COUNT=10")
	assert.Equal(t, Weekly, rule.Freq)
	assert.Equal(t, 2, rule.Interval)
	assert.Len(t, rule.ByDay, 3)
	assert.Equal(t, 10, rule.Count)
	assert.Nil(t, rule.Until)

	rule = mustParse(t, "FREQ=DAILY;UNTIL=20251120T100000Z")
	assert.Equal(t, Daily, rule.Freq)
	require.NotNil(t, rule.Until)
	assert.Equal(t, utc(2025, 11, 20, 10), *rule.Until)

	// Date-only UNTIL.
	rule = mustParse(t, "FREQ=DAILY;UNTIL=20251120")
	require.NotNil(t, rule.Until)
	assert.Equal(t, utc(2025, 11, 20, 0), *rule.Until)
}

func TestValidateRejectsUntilBeforeStart(t *testing.T) {
	rule := mustParse(t, "FREQ=DAILY;UNTIL=20250101")
	err := rule.Validate(utc(2025, 6, 1, 10))
	assert.ErrorIs(t, err, ErrMalformedRule)
}

func TestWeeklyCountYieldsExactlyN(t *testing.T) {
	base := utc(2025, 11, 15, 10) // Saturday
	rule := mustParse(t, "FREQ=WEEKLY;COUNT=5")

	occs, err := Expand(base, base.Add(time.Hour), rule,
		utc(2000, 1, 1, 0), utc(2100, 1, 1, 0))
	require.NoError(t, err)
	require.Len(t, occs, 5)

	for i, occ := range occs {
		want := base.AddDate(0, 0, 7*i)
		assert.True(t, occ.Start.Equal(want), "occurrence %d: got %v want %v", i, occ.Start, want)
		assert.Equal(t, time.Hour, occ.End.Sub(occ.Start))
	}
}

func TestWeeklyIntervalSpacing(t *testing.T) {
	base := utc(2025, 11, 15, 10)
	rule := mustParse(t, "FREQ=WEEKLY;INTERVAL=2;COUNT=4")

	occs, err := Expand(base, base.Add(time.Hour), rule,
		utc(2000, 1, 1, 0), utc(2100, 1, 1, 0))
	require.NoError(t, err)
	require.Len(t, occs, 4)

	for i := 1; i < len(occs); i++ {
		assert.Equal(t, 14*24*time.Hour, occs[i].Start.Sub(occs[i-1].Start))
	}
}

func TestUntilBoundsEveryOccurrence(t *testing.T) {
	base := utc(2025, 11, 15, 10)
	rule := mustParse(t, "FREQ=DAILY;UNTIL=20251120T100000Z")

	occs, err := Expand(base, base.Add(time.Hour), rule,
		utc(2000, 1, 1, 0), utc(2100, 1, 1, 0))
	require.NoError(t, err)
	require.NotEmpty(t, occs)

	for _, occ := range occs {
		assert.False(t, occ.Start.After(*rule.Until), "occurrence %v past UNTIL", occ.Start)
	}
	// UNTIL is inclusive: the 11-20 10:00 occurrence is the last one.
	assert.True(t, occs[len(occs)-1].Start.Equal(utc(2025, 11, 20, 10)))
	assert.Len(t, occs, 6)
}

func TestExpansionIsIdempotent(t *testing.T) {
	base := utc(2025, 11, 15, 10)
	rule := mustParse(t, "FREQ=WEEKLY;BYDAY=MO,WE,FR")
	from, to := utc(2025, 11, 1, 0), utc(2025, 12, 31, 0)

	first, err := Expand(base, base.Add(time.Hour), rule, from, to)
	require.NoError(t, err)
	second, err := Expand(base, base.Add(time.Hour), rule, from, to)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSubWindowIsSubsetOfSuperWindow(t *testing.T) {
	base := utc(2025, 11, 15, 10)
	rule := mustParse(t, "FREQ=DAILY;INTERVAL=3")

	super, err := Expand(base, base.Add(time.Hour), rule,
		utc(2025, 11, 1, 0), utc(2026, 2, 1, 0))
	require.NoError(t, err)
	sub, err := Expand(base, base.Add(time.Hour), rule,
		utc(2025, 12, 1, 0), utc(2026, 1, 1, 0))
	require.NoError(t, err)
	require.NotEmpty(t, sub)

	inSuper := make(map[time.Time]bool, len(super))
	for _, occ := range super {
		inSuper[occ.Start] = true
	}
	for _, occ := range sub {
		assert.True(t, inSuper[occ.Start], "occurrence %v missing from super-window", occ.Start)
	}
	assert.Less(t, len(sub), len(super))
}

// A Saturday base with BYDAY=MO,WE,FR does not itself satisfy the
// by-day filter, so only the Monday/Wednesday/Friday instances appear.
func TestByDaySkipsNonMatchingBaseStart(t *testing.T) {
	base := utc(2025, 11, 15, 10) // Saturday
	rule := mustParse(t, "FREQ=WEEKLY;BYDAY=MO,WE,FR")

	occs, err := Expand(base, base.Add(time.Hour), rule,
		utc(2025, 11, 15, 0), utc(2025, 11, 22, 0))
	require.NoError(t, err)
	require.Len(t, occs, 3)

	assert.True(t, occs[0].Start.Equal(utc(2025, 11, 17, 10))) // Monday
	assert.True(t, occs[1].Start.Equal(utc(2025, 11, 19, 10))) // Wednesday
	assert.True(t, occs[2].Start.Equal(utc(2025, 11, 21, 10))) // Friday
}

// Monthly series anchored on day 31 skips months without a day 31.
func TestMonthlySkipsShortMonths(t *testing.T) {
	base := utc(2025, 1, 31, 9)
	rule := mustParse(t, "FREQ=MONTHLY;COUNT=4")

	occs, err := Expand(base, base.Add(time.Hour), rule,
		utc(2025, 1, 1, 0), utc(2026, 1, 1, 0))
	require.NoError(t, err)
	require.Len(t, occs, 4)

	assert.True(t, occs[0].Start.Equal(utc(2025, 1, 31, 9)))
	assert.True(t, occs[1].Start.Equal(utc(2025, 3, 31, 9))) // February skipped
	assert.True(t, occs[2].Start.Equal(utc(2025, 5, 31, 9))) // April skipped
	assert.True(t, occs[3].Start.Equal(utc(2025, 7, 31, 9))) // June skipped
}

func TestExpandRejectsInvertedWindow(t *testing.T) {
	base := utc(2025, 11, 15, 10)
	rule := mustParse(t, "FREQ=DAILY")
	_, err := Expand(base, base.Add(time.Hour), rule,
		utc(2025, 12, 1, 0), utc(2025, 11, 1, 0))
	assert.Error(t, err)
}

func TestOpenEndedRuleStopsAtWindowEnd(t *testing.T) {
	base := utc(2025, 1, 1, 8)
	rule := mustParse(t, "FREQ=DAILY") // no COUNT, no UNTIL

	occs, err := Expand(base, base.Add(30*time.Minute), rule,
		utc(2025, 3, 1, 0), utc(2025, 3, 8, 0))
	require.NoError(t, err)
	require.Len(t, occs, 7)
	for _, occ := range occs {
		assert.False(t, occ.Start.After(utc(2025, 3, 8, 0)))
	}
}

// An occurrence that starts before the window but overlaps it is returned.
func TestOverlappingOccurrenceAtWindowStart(t *testing.T) {
	base := utc(2025, 11, 10, 22) // 22:00-02:00 crosses midnight
	rule := mustParse(t, "FREQ=DAILY;COUNT=3")

	occs, err := Expand(base, base.Add(4*time.Hour), rule,
		utc(2025, 11, 11, 0), utc(2025, 11, 12, 0))
	require.NoError(t, err)
	require.NotEmpty(t, occs)
	assert.True(t, occs[0].Start.Equal(utc(2025, 11, 10, 22)))
}
