package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RawSlot is a single bookable start time as reported by the scheduling
// provider, before normalization. The Time field arrives in any of several
// timestamp formats depending on the provider's mood.
type RawSlot struct {
	Time string `json:"time"`
}

// Slot is the canonical slot record.
type Slot struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // wall-clock HH:MM
	ISOTime   string `json:"iso_time"`   // original provider timestamp
	Formatted string `json:"formatted"`  // display HH:MM
}

const (
	dayKeyLayout    = "2006-01-02"
	compositeLayout = "2006-01-02 15:04:05"
	offsetlessISO   = "2006-01-02T15:04:05"
	wallClockLayout = "15:04"
)

// NormalizeSlots converts raw per-day slot payloads into canonical slots
// grouped by calendar date. Slots whose timestamp survives none of the parse
// tiers are dropped without comment; days with zero survivors are absent from
// the result. Lenient by design: provider timestamp formatting is
// inconsistent enough that strictness would cost whole days of availability.
func NormalizeSlots(byDay map[string][]RawSlot) map[string][]Slot {
	grouped := make(map[string][]Slot)

	for day, raws := range byDay {
		daySlots := make([]Slot, 0, len(raws))
		for _, raw := range raws {
			if raw.Time == "" {
				continue
			}
			t, ok := parseSlotTime(day, raw.Time)
			if !ok {
				continue
			}
			daySlots = append(daySlots, Slot{
				Date:      day,
				StartTime: t.Format(wallClockLayout),
				ISOTime:   raw.Time,
				Formatted: t.Format(wallClockLayout),
			})
		}
		if len(daySlots) > 0 {
			grouped[day] = daySlots
		}
	}

	return grouped
}

// parseSlotTime runs the three fallback tiers:
//  1. full ISO-8601 with an explicit offset (or Z),
//  2. offset-less ISO treated as UTC,
//  3. composite reconstruction from the day key plus the time fragment
//     before any offset marker.
func parseSlotTime(day, raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}

	if t, err := time.Parse(offsetlessISO, raw); err == nil {
		return t.UTC(), true
	}

	fragment := raw
	if i := strings.Index(fragment, "T"); i >= 0 {
		fragment = fragment[i+1:]
	}
	fragment = trimOffsetMarker(fragment)

	t, err := time.Parse(compositeLayout, fmt.Sprintf("%s %s", day, fragment))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// trimOffsetMarker cuts a trailing +HH:MM / -HH:MM / Z from a bare time
// fragment, leaving the wall-clock part.
func trimOffsetMarker(fragment string) string {
	if i := strings.IndexAny(fragment, "+-"); i >= 0 {
		fragment = fragment[:i]
	}
	return strings.TrimSuffix(fragment, "Z")
}

// Curator bounds and orders grouped slots down to a presentable shortlist.
type Curator struct {
	locale         Locale
	maxDays        int
	maxSlotsPerDay int
	marker         string
}

const (
	DefaultMaxDays        = 3
	DefaultMaxSlotsPerDay = 3
	defaultSlotMarker     = "🕓"
)

func NewCurator(locale Locale, maxDays, maxSlotsPerDay int) *Curator {
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}
	if maxSlotsPerDay <= 0 {
		maxSlotsPerDay = DefaultMaxSlotsPerDay
	}
	return &Curator{
		locale:         locale,
		maxDays:        maxDays,
		maxSlotsPerDay: maxSlotsPerDay,
		marker:         defaultSlotMarker,
	}
}

// Curate sorts the grouped dates chronologically (lexicographic works for
// YYYY-MM-DD keys), keeps the first maxDays days and maxSlotsPerDay slots per
// day in their original provider order, and applies the total hard cap.
func (c *Curator) Curate(byDate map[string][]Slot) []Slot {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) > c.maxDays {
		dates = dates[:c.maxDays]
	}

	curated := make([]Slot, 0, c.maxDays*c.maxSlotsPerDay)
	for _, date := range dates {
		slots := byDate[date]
		if len(slots) > c.maxSlotsPerDay {
			slots = slots[:c.maxSlotsPerDay]
		}
		curated = append(curated, slots...)
	}

	if limit := c.maxDays * c.maxSlotsPerDay; len(curated) > limit {
		curated = curated[:limit]
	}
	return curated
}

// Readable renders one numbered display line per curated slot, e.g.
// "🕓 *Opción 1:* Viernes 15 de Marzo de 2024 a las *10:00* hrs".
func (c *Curator) Readable(slots []Slot) []string {
	lines := make([]string, 0, len(slots))
	for i, slot := range slots {
		date, err := time.Parse(dayKeyLayout, slot.Date)
		if err != nil {
			// Date keys come from normalization, which guarantees the format.
			continue
		}
		lines = append(lines, fmt.Sprintf("%s *Opción %d:* %s a las *%s* hrs",
			c.marker, i+1, c.locale.FormatLongDate(date, true), slot.StartTime))
	}
	return lines
}
