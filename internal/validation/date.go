package validation

import (
	"bytes"
	"fmt"
	"time"
)

// OptionalDate distinguishes the three states a date field can take in a
// JSON body: absent, explicit null, or a value. Absent leaves the stored
// value untouched; null clears it.
type OptionalDate struct {
	Set   bool // field was present in the body
	Valid bool // false when the field was an explicit null
	Time  time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// UnmarshalJSON records presence and coerces RFC3339 timestamps or plain
// YYYY-MM-DD dates.
func (d *OptionalDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	if bytes.Equal(data, []byte("null")) {
		d.Valid = false
		return nil
	}

	s := string(bytes.Trim(data, `"`))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Valid = true
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date: %q", s)
}
