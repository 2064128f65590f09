package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day. It is stored in DATE columns and travels as
// "2006-01-02" in JSON; the empty value maps to NULL.
type Date string

func NewDate(t time.Time) Date { return Date(t.Format(DateLayout)) }

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t), nil
}

// Time returns midnight UTC of the day, or the zero time for an empty date.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) IsZero() bool { return d == "" }

func (d Date) String() string { return string(d) }

func (d *Date) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = NewDate(x)
	case []byte:
		return d.scanString(string(x))
	case string:
		return d.scanString(x)
	default:
		return fmt.Errorf("scan date: unsupported type %T", v)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	if s == "" {
		*d = ""
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}
