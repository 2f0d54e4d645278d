package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type JSONMap map[string]any

func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil // Store NULL if the map is nil
	}
	return json.Marshal(j)
}

func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	b, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("JSONMap: %w", err)
	}

	return json.Unmarshal(b, j)
}

// MarshalJSONB encodes v for a jsonb column.
func MarshalJSONB(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}
	return b, nil
}

// ScanJSONB decodes a jsonb column into dest. NULL leaves dest untouched.
func ScanJSONB(src any, dest any) error {
	if src == nil {
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dest)
}

func jsonBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("scan failed, expected []byte but got %T", value)
	}
}
