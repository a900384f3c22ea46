package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// now is the clock used for date defaults.
var now = time.Now

// Date is a calendar day, serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day. It is evaluated on every call.
func Today() Date {
	return DateOf(now())
}

// ParseDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp, which is
// truncated to its day.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
