package schedule

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// Slot es la clave de una toma concreta: fecha ("YYYY-MM-DD") + hora ("HH:MM").
// Comparable, sirve directo como key de map.
type Slot struct {
	Date string
	Time string
}

// Expand enumera todos los slots que implica una definición de medicina:
// cada día de [start, end] (ambos extremos incluidos; una medicina "hasta
// el día X" incluye el día X) por cada hora distinta del set.
//
// Puro y determinista: misma entrada, mismo resultado, sin efectos.
func Expand(start, end time.Time, times []TimeOfDay) ([]Slot, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	if len(times) == 0 {
		return nil, ErrInvalidTimes
	}

	// Dedup por string renderizado: dos TimeOfDay que formatean igual
	// producirían el mismo slot.
	seen := make(map[string]bool, len(times))
	formatted := make([]string, 0, len(times))
	for _, t := range times {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		s := t.Format()
		if seen[s] {
			continue
		}
		seen[s] = true
		formatted = append(formatted, s)
	}
	sort.Strings(formatted)

	out := make([]Slot, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		for _, ts := range formatted {
			out = append(out, Slot{Date: date, Time: ts})
		}
	}

	return out, nil
}

// truncateToDay normaliza a medianoche UTC. Las fechas del dominio son
// fechas de calendario "naive"; cualquier componente horario que llegue
// de afuera se descarta acá.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
