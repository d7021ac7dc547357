// Package value defines the closed set of kinds a resultset snapshot can
// hold and converts them into a deterministic JSON-ready form.
package value

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time component. It normalizes to
// "YYYY-MM-DD" instead of the full date-time rendering of time.Time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a Date from its components
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the Date on which t falls, in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Map is a string-keyed mapping that preserves insertion order. Plain Go
// maps do not carry ordering, so snapshot values that must render keys in
// a stable, author-chosen order use Map instead.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap creates an empty ordered map
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores v under k, appending k to the key order on first insert.
// It returns the map to allow chained construction.
func (m *Map) Set(k string, v any) *Map {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
	return m
}

// Get returns the value stored under k
func (m *Map) Get(k string) (any, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Len returns the number of keys
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}
