package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime is a timestamp column that tolerates the shapes left behind by the
// legacy document-store importer: a `{"seconds": ..., "nanoseconds": ...}`
// object, an RFC3339 string, an epoch-milliseconds number, or null. Values
// that match none of these parse as invalid rather than failing the row.
type FlexTime struct {
	Time  time.Time
	Valid bool
}

type secondsPayload struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t, Valid: true}
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	f.Time = time.Time{}
	f.Valid = false

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var payload secondsPayload
	if err := json.Unmarshal(data, &payload); err == nil && (payload.Seconds != 0 || payload.Nanoseconds != 0) {
		f.Time = time.Unix(payload.Seconds, payload.Nanoseconds).UTC()
		f.Valid = true

		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
			parsed, parseErr := time.Parse(layout, text)
			if parseErr == nil {
				f.Time = parsed.UTC()
				f.Valid = true

				return nil
			}
		}

		return nil
	}

	var millis int64
	if err := json.Unmarshal(data, &millis); err == nil && millis > 0 {
		f.Time = time.UnixMilli(millis).UTC()
		f.Valid = true
	}

	return nil
}

func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(f.Time.Format(time.RFC3339Nano))
}

func (f *FlexTime) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		f.Time = time.Time{}
		f.Valid = false

		return nil
	case time.Time:
		f.Time = value.UTC()
		f.Valid = true

		return nil
	case []byte:
		return f.UnmarshalJSON(value)
	case string:
		return f.UnmarshalJSON([]byte(value))
	default:
		return fmt.Errorf("unsupported source type %T for FlexTime", src)
	}
}

func (f FlexTime) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}

	return json.Marshal(f.Time.Format(time.RFC3339Nano))
}

// Format renders the timestamp with the given layout, or the placeholder when
// the value never parsed.
func (f FlexTime) Format(layout, placeholder string) string {
	if !f.Valid {
		return placeholder
	}

	return f.Time.Format(layout)
}

// After reports whether f is strictly later than other. An invalid value is
// never later than anything.
func (f FlexTime) After(other FlexTime) bool {
	if !f.Valid {
		return false
	}

	if !other.Valid {
		return true
	}

	return f.Time.After(other.Time)
}
