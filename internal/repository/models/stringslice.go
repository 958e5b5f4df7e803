package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface. A nil slice is stored as
// NULL so that "never provided" and "provided empty" stay distinguishable
// in the column.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface. NULL, empty and corrupt
// column values all scan to a nil slice without error: a row whose tag
// column was damaged out of band must still be readable, the tags are
// simply absent.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var bytesToParse []byte

	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = nil
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(bytesToParse, &parsed); err != nil {
		*s = nil
		return nil
	}
	*s = parsed
	return nil
}
