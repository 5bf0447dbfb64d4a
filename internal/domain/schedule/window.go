package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Window is the half-open [Start, End) range over which availability is
// queried. Both bounds carry the timezone they were resolved in.
type Window struct {
	Start time.Time
	End   time.Time
}

// startRule pairs a predicate with a resolver. Rules are evaluated in
// priority order and the first predicate that matches ends the scan, even
// when its resolver declines (the default start then stands). Keeping the
// rules as an explicit ordered list makes the tie-break order auditable and
// each rule testable on its own.
type startRule struct {
	name    string
	matches func(expr string) bool
	resolve func(expr string, now time.Time, loc *time.Location) (time.Time, bool)
}

// WindowResolver interprets free-text date expressions against a reference
// "now". Unrecognized input degrades to "next week starting tomorrow" rather
// than failing: a usable window always comes back.
type WindowResolver struct {
	locale     Locale
	dayOfMonth *regexp.Regexp
	isoDate    *regexp.Regexp
	rules      []startRule
}

func NewWindowResolver(locale Locale) *WindowResolver {
	r := &WindowResolver{
		locale:     locale,
		dayOfMonth: regexp.MustCompile(locale.DayOfMonthPattern),
		isoDate:    regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	}

	r.rules = []startRule{
		{
			name:    "today",
			matches: func(expr string) bool { return containsAny(expr, locale.TodayTokens) },
			resolve: func(_ string, now time.Time, _ *time.Location) (time.Time, bool) {
				return now, true
			},
		},
		{
			// The plain-tomorrow tokens are substrings of the day-after
			// phrase, so this rule steps aside when that phrase is present.
			name: "tomorrow",
			matches: func(expr string) bool {
				return containsAny(expr, locale.TomorrowTokens) && !containsAny(expr, locale.DayAfterTokens)
			},
			resolve: func(_ string, now time.Time, _ *time.Location) (time.Time, bool) {
				return now.AddDate(0, 0, 1), true
			},
		},
		{
			name:    "day after tomorrow",
			matches: func(expr string) bool { return containsAny(expr, locale.DayAfterTokens) },
			resolve: func(_ string, now time.Time, _ *time.Location) (time.Time, bool) {
				return now.AddDate(0, 0, 2), true
			},
		},
		{
			name:    "next weekday",
			matches: func(expr string) bool { _, ok := r.findWeekday(expr); return ok },
			resolve: r.resolveWeekday,
		},
		{
			name:    "day of month",
			matches: func(expr string) bool { return r.dayOfMonth.MatchString(expr) },
			resolve: r.resolveDayOfMonth,
		},
		{
			name:    "iso date",
			matches: func(expr string) bool { return r.isoDate.MatchString(expr) },
			resolve: r.resolveISODate,
		},
	}

	return r
}

// Resolve parses the expression into a search window. The start date and the
// window length are decided by two independent passes over the same text:
// the ordered start rules above, then the week/month length keywords.
func (r *WindowResolver) Resolve(expression string, now time.Time, loc *time.Location) Window {
	start := now.AddDate(0, 0, 1) // tomorrow by default

	expr := strings.ToLower(strings.TrimSpace(expression))
	if expr != "" {
		for _, rule := range r.rules {
			if !rule.matches(expr) {
				continue
			}
			if resolved, ok := rule.resolve(expr, now, loc); ok {
				start = resolved
			}
			break
		}
	}

	return Window{Start: start, End: r.windowEnd(expr, start)}
}

func (r *WindowResolver) windowEnd(expr string, start time.Time) time.Time {
	switch {
	case containsAny(expr, r.locale.WeekTokens):
		return start.AddDate(0, 0, 7)
	case containsAny(expr, r.locale.MonthWordTokens):
		return addCalendarMonth(start)
	default:
		return start.AddDate(0, 0, 7)
	}
}

func (r *WindowResolver) findWeekday(expr string) (time.Weekday, bool) {
	for _, token := range r.locale.WeekdayOrder {
		if strings.Contains(expr, token) {
			return r.locale.Weekdays[token], true
		}
	}
	return 0, false
}

// resolveWeekday returns the next occurrence of the named weekday strictly
// after today. Naming today's weekday rolls a full week forward.
func (r *WindowResolver) resolveWeekday(expr string, now time.Time, _ *time.Location) (time.Time, bool) {
	target, ok := r.findWeekday(expr)
	if !ok {
		return time.Time{}, false
	}

	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days), true
}

// resolveDayOfMonth handles "<día> de <mes>" expressions. A date already past
// this year rolls to next year; an invalid day-of-month declines so the
// default window stands.
func (r *WindowResolver) resolveDayOfMonth(expr string, now time.Time, loc *time.Location) (time.Time, bool) {
	m := r.dayOfMonth.FindStringSubmatch(expr)
	if m == nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := r.locale.Months[m[2]]
	if !ok {
		return time.Time{}, false
	}

	year := now.Year()
	if month < now.Month() || (month == now.Month() && day < now.Day()) {
		year++
	}

	if day < 1 || day > daysIn(month, year) {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc), true
}

func (r *WindowResolver) resolveISODate(expr string, _ time.Time, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", expr, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func containsAny(expr string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(expr, token) {
			return true
		}
	}
	return false
}

// addCalendarMonth advances one calendar month, clamping the day so that
// e.g. Jan 31 lands on the last day of February instead of overflowing into
// March the way naive AddDate arithmetic would.
func addCalendarMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	anchor := time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(anchor.Month(), anchor.Year()); d > last {
		d = last
	}
	return time.Date(anchor.Year(), anchor.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
