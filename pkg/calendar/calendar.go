// Package calendar provides the simulation date used by a session.
//
// Every month is treated as having exactly 30 days. There is no leap-year or
// month-length logic; the simplification is part of the game rules.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

const (
	// DaysPerMonth is the fixed month length used when advancing.
	DaysPerMonth = 30
	// MonthsPerYear is the number of months before the year rolls over.
	MonthsPerYear = 12

	maxParsedDay = 31
)

var (
	// ErrMalformedInput is returned when three integers and two delimiters
	// cannot be extracted from the input.
	ErrMalformedInput = errors.New("malformed date")
	// ErrOutOfRange is returned when the month or day is outside its range.
	ErrOutOfRange = errors.New("date out of range")
)

// Date is a simulation date.
// Month and day ranges are checked by Parse only; Next never validates.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Parse parses a date written as month, day and year separated by a single
// delimiter character (e.g. "01/05/24").
// The year is accepted unchecked, including zero and negative values.
// Text after the year is ignored.
func Parse(raw string) (Date, error) {
	s := scanner{input: []rune(raw)}

	month, ok := s.integer()
	if !ok || !s.delimiter() {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedInput, raw)
	}
	day, ok := s.integer()
	if !ok || !s.delimiter() {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedInput, raw)
	}
	year, ok := s.integer()
	if !ok {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedInput, raw)
	}

	if month < 1 || month > MonthsPerYear {
		return Date{}, fmt.Errorf("%w: month %d", ErrOutOfRange, month)
	}
	if day < 1 || day > maxParsedDay {
		return Date{}, fmt.Errorf("%w: day %d", ErrOutOfRange, day)
	}

	return Date{Day: day, Month: month, Year: year}, nil
}

// Next returns the date one day later.
// The day rolls over after day 30. The month check runs even when the day
// did not roll over, so an out-of-range month is corrected on the next call.
func (d Date) Next() Date {
	d.Day++
	if d.Day > DaysPerMonth {
		d.Day = 1
		d.Month++
	}
	if d.Month > MonthsPerYear {
		d.Month = 1
		d.Year++
	}
	return d
}

// Advance returns the date n days later. Non-positive n returns d unchanged.
func (d Date) Advance(n int) Date {
	for i := 0; i < n; i++ {
		d = d.Next()
	}
	return d
}

// String renders the date as M/D/Y, the way the console shows it.
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}

// DaysSince returns the number of simulated days from start to d, where d is
// start advanced by Next zero or more times. A parsed day 31 occupies its own
// day before rolling over to the 1st of the next month.
func (d Date) DaysSince(start Date) int {
	n := d.ordinal() - start.ordinal()
	if start.Day > DaysPerMonth && d != start {
		n++
	}
	return n
}

func (d Date) ordinal() int {
	return d.Year*MonthsPerYear*DaysPerMonth + (d.Month-1)*DaysPerMonth + d.Day - 1
}

// scanner extracts whitespace-separated integers and single-character
// delimiters from a line, mirroring formatted stream extraction.
type scanner struct {
	input []rune
	pos   int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.input) && unicode.IsSpace(s.input[s.pos]) {
		s.pos++
	}
}

// integer reads an optionally signed base-10 integer.
func (s *scanner) integer() (int, bool) {
	s.skipSpace()
	start := s.pos
	if s.pos < len(s.input) && (s.input[s.pos] == '+' || s.input[s.pos] == '-') {
		s.pos++
	}
	digits := s.pos
	for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == digits {
		return 0, false
	}

	n, err := strconv.Atoi(string(s.input[start:s.pos]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// delimiter consumes exactly one non-whitespace character.
func (s *scanner) delimiter() bool {
	s.skipSpace()
	if s.pos >= len(s.input) {
		return false
	}
	s.pos++
	return true
}
