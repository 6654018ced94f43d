package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("resource not found")

const (
	// DefaultPageSize is used by every list endpoint when take is not supplied.
	DefaultPageSize = 50
	// MaxPageSize caps a requested take.
	MaxPageSize = 200
)

// Page is a skip/take window over an ordered result set.
type Page struct {
	Skip int
	Take int
}

// PageLimits configures how a requested Page is bounded.
type PageLimits struct {
	Default int
	Max     int
}

// Normalize fills in the default take and clamps it to the maximum.
func (p Page) Normalize(limits PageLimits) Page {
	if limits.Default <= 0 {
		limits.Default = DefaultPageSize
	}
	if limits.Max <= 0 {
		limits.Max = MaxPageSize
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Take <= 0 {
		p.Take = limits.Default
	}
	if p.Take > limits.Max {
		p.Take = limits.Max
	}
	return p
}

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date format: %q", s)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	parsed, err := ParseDate(strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DatePtr converts a nullable column value into a *Date.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// TimePtr converts a *Date back into a nullable column value.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
