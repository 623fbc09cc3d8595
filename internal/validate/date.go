package validate

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date: Postgres DATE in storage, "YYYY-MM-DD" in JSON.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) *Date {
	y, m, d := t.Date()
	return &Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (Date) GormDataType() string { return "date" }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Format(DateLayout), nil
}

func (d *Date) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*d = *DateOf(x)
		return nil
	case string:
		return d.parse(x)
	case []byte:
		return d.parse(string(x))
	default:
		return fmt.Errorf("cannot scan %T into Date", v)
	}
}

func (d *Date) parse(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// DateValue converts a parsed field into the stored form.
func DateValue(n Nullable[time.Time]) *Date {
	if n.Val == nil {
		return nil
	}
	return DateOf(*n.Val)
}
