package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RoomRefs is the bookings.room_refs column. Legacy rows store it as a bare
// string, an array of strings, or null; all three normalize to a slice with
// empty entries dropped.
type RoomRefs []string

func (r *RoomRefs) UnmarshalJSON(data []byte) error {
	*r = nil

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*r = RoomRefs{single}
		}

		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("room refs must be a string or an array of strings: %w", err)
	}

	for _, ref := range many {
		if ref != "" {
			*r = append(*r, ref)
		}
	}

	return nil
}

func (r RoomRefs) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	return json.Marshal([]string(r))
}

func (r *RoomRefs) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*r = nil

		return nil
	case []byte:
		return r.UnmarshalJSON(value)
	case string:
		return r.UnmarshalJSON([]byte(value))
	default:
		return fmt.Errorf("unsupported source type %T for RoomRefs", src)
	}
}

func (r RoomRefs) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}

	return json.Marshal([]string(r))
}
