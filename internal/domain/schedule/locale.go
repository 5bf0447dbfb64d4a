package schedule

import (
	"fmt"
	"time"
)

// Locale carries the language-specific lookup tables the window resolver and
// slot curator need. It is immutable configuration injected at construction,
// so tests can swap languages without touching package state.
type Locale struct {
	// Weekdays maps lowercase weekday tokens (accented and unaccented
	// spellings) to the weekday they name.
	Weekdays map[string]time.Weekday
	// Months maps lowercase month tokens to month numbers.
	Months map[string]time.Month
	// WeekdayOrder fixes the scan order over Weekdays so that resolution is
	// deterministic when an expression mentions several tokens.
	WeekdayOrder []string
	// WeekdayNames and MonthNames are display forms, indexed by time.Weekday
	// and time.Month respectively. MonthNames[0] is unused.
	WeekdayNames [7]string
	MonthNames   [13]string
	// Keyword token lists for the relative-date and window-length rules.
	TodayTokens     []string
	TomorrowTokens  []string
	DayAfterTokens  []string
	WeekTokens      []string
	MonthWordTokens []string
	// DayOfMonthPattern matches "<day> of <month>" expressions, with the day
	// number and month name as the two capture groups.
	DayOfMonthPattern string
}

// SpanishLocale is the production locale: the assistant serves the Mexican
// tourism sector in Spanish.
func SpanishLocale() Locale {
	return Locale{
		Weekdays: map[string]time.Weekday{
			"lunes":     time.Monday,
			"martes":    time.Tuesday,
			"miércoles": time.Wednesday,
			"miercoles": time.Wednesday,
			"jueves":    time.Thursday,
			"viernes":   time.Friday,
			"sábado":    time.Saturday,
			"sabado":    time.Saturday,
			"domingo":   time.Sunday,
		},
		Months: map[string]time.Month{
			"enero":      time.January,
			"febrero":    time.February,
			"marzo":      time.March,
			"abril":      time.April,
			"mayo":       time.May,
			"junio":      time.June,
			"julio":      time.July,
			"agosto":     time.August,
			"septiembre": time.September,
			"octubre":    time.October,
			"noviembre":  time.November,
			"diciembre":  time.December,
		},
		WeekdayOrder: []string{
			"lunes", "martes", "miércoles", "miercoles",
			"jueves", "viernes", "sábado", "sabado", "domingo",
		},
		WeekdayNames: [7]string{
			"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
		},
		MonthNames: [13]string{
			"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
			"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
		},
		TodayTokens:       []string{"hoy"},
		TomorrowTokens:    []string{"mañana", "manana"},
		DayAfterTokens:    []string{"pasado mañana", "pasado manana"},
		WeekTokens:        []string{"semana", "7 días", "7 dias"},
		MonthWordTokens:   []string{"mes"},
		DayOfMonthPattern: `(\d+)\s+de\s+(\p{L}+)`,
	}
}

// FormatLongDate renders a date in the locale's long human-readable form,
// e.g. "Viernes 15 de Marzo de 2024".
func (l Locale) FormatLongDate(t time.Time, includeYear bool) string {
	dayName := l.WeekdayNames[t.Weekday()]
	monthName := l.MonthNames[t.Month()]
	if includeYear {
		return fmt.Sprintf("%s %d de %s de %d", dayName, t.Day(), monthName, t.Year())
	}
	return fmt.Sprintf("%s %d de %s", dayName, t.Day(), monthName)
}
