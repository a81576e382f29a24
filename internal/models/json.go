package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON stores free-form values in a jsonb column.
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported JSON column type")
	}
	return json.Unmarshal(data, j)
}

// FeaturesJSON copies scored features into a JSON column value.
func FeaturesJSON(f Features) JSON {
	if f == nil {
		return nil
	}
	out := make(JSON, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
