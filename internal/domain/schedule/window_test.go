//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"booking-concierge/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mexicoCity(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	return loc
}

func TestWindowResolver(t *testing.T) {
	loc := mexicoCity(t)
	resolver := schedule.NewWindowResolver(schedule.SpanishLocale())
	// Wednesday
	now := time.Date(2024, 4, 10, 9, 30, 0, 0, loc)

	t.Run("empty expression defaults to next week starting tomorrow", func(t *testing.T) {
		w := resolver.Resolve("", now, loc)
		assert.Equal(t, now.AddDate(0, 0, 1), w.Start)
		assert.Equal(t, w.Start.AddDate(0, 0, 7), w.End)
	})

	t.Run("unrecognized expression keeps the default window", func(t *testing.T) {
		w := resolver.Resolve("para el puente", now, loc)
		assert.Equal(t, now.AddDate(0, 0, 1), w.Start)
		assert.Equal(t, w.Start.AddDate(0, 0, 7), w.End)
	})

	t.Run("relative keywords", func(t *testing.T) {
		cases := []struct {
			expr string
			days int
		}{
			{"hoy", 0},
			{"quiero reservar mañana", 1},
			{"manana por favor", 1},
			{"pasado mañana", 2},
			{"pasado manana", 2},
		}
		for _, tc := range cases {
			t.Run(tc.expr, func(t *testing.T) {
				w := resolver.Resolve(tc.expr, now, loc)
				assert.Equal(t, now.AddDate(0, 0, tc.days), w.Start)
			})
		}
	})

	t.Run("weekday lands on named weekday strictly in the future", func(t *testing.T) {
		weekdays := map[string]time.Weekday{
			"lunes":     time.Monday,
			"martes":    time.Tuesday,
			"miércoles": time.Wednesday,
			"jueves":    time.Thursday,
			"viernes":   time.Friday,
			"sábado":    time.Saturday,
			"domingo":   time.Sunday,
		}
		for name, expected := range weekdays {
			t.Run(name, func(t *testing.T) {
				w := resolver.Resolve(name+" próximo", now, loc)
				assert.Equal(t, expected, w.Start.Weekday())
				assert.True(t, w.Start.After(now), "start must be strictly after now")
				assert.LessOrEqual(t, w.Start.Sub(now), 13*24*time.Hour)
			})
		}
	})

	t.Run("naming today's weekday rolls a full week", func(t *testing.T) {
		w := resolver.Resolve("miércoles", now, loc)
		assert.Equal(t, now.AddDate(0, 0, 7), w.Start)
	})

	t.Run("day of month still ahead stays in current year", func(t *testing.T) {
		w := resolver.Resolve("15 de mayo", now, loc)
		assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, loc), w.Start)
	})

	t.Run("day of month already past rolls to next year", func(t *testing.T) {
		w := resolver.Resolve("31 de marzo", now, loc)
		assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, loc), w.Start)
	})

	t.Run("invalid day of month keeps the default window", func(t *testing.T) {
		w := resolver.Resolve("31 de abril", now, loc)
		assert.Equal(t, now.AddDate(0, 0, 1), w.Start)
	})

	t.Run("unknown month name keeps the default window", func(t *testing.T) {
		w := resolver.Resolve("5 de brumario", now, loc)
		assert.Equal(t, now.AddDate(0, 0, 1), w.Start)
	})

	t.Run("strict iso date parses and localizes", func(t *testing.T) {
		w := resolver.Resolve("2024-06-01", now, loc)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), w.Start)
	})

	t.Run("malformed iso date keeps the default window", func(t *testing.T) {
		w := resolver.Resolve("2024-02-31", now, loc)
		assert.Equal(t, now.AddDate(0, 0, 1), w.Start)
	})

	t.Run("week keyword sets a seven day window", func(t *testing.T) {
		w := resolver.Resolve("la próxima semana", now, loc)
		assert.Equal(t, w.Start.AddDate(0, 0, 7), w.End)
	})

	t.Run("month keyword sets a calendar month window", func(t *testing.T) {
		w := resolver.Resolve("hoy y todo el mes", now, loc)
		assert.Equal(t, time.Date(2024, 5, 10, 9, 30, 0, 0, loc), w.End)
	})

	t.Run("calendar month clamps short months", func(t *testing.T) {
		jan10 := time.Date(2024, 1, 10, 12, 0, 0, 0, loc)
		w := resolver.Resolve("el 31 de enero y todo el mes", jan10, loc)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, loc), w.Start)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, loc), w.End)
	})

	t.Run("end is always after start", func(t *testing.T) {
		exprs := []string{"", "hoy", "mañana", "domingo", "31 de marzo", "2024-06-01", "garbage input", "mes"}
		for _, expr := range exprs {
			w := resolver.Resolve(expr, now, loc)
			assert.True(t, w.End.After(w.Start), "expr %q", expr)
		}
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		first := resolver.Resolve("viernes de la próxima semana", now, loc)
		second := resolver.Resolve("viernes de la próxima semana", now, loc)
		assert.Equal(t, first, second)
	})
}
