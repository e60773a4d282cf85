package common

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
)

// marshal data structure to JSON
func ToJSON(x interface{}) ([]byte, error) {
	bytes, err := json.MarshalIndent(x, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("marshaling %T to json: %w", x, err)
	}
	return bytes, nil
}

// read JSON from file, unmarshal into data structure
func FromFile(path string, x interface{}) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(bytes, x); err != nil {
		return fmt.Errorf("unmarshaling json to %T (%s): %w", x, path, err)
	}
	return nil
}

// marshal data structure to JSON, write to file
func ToFile(path string, x interface{}) error {
	bytes, err := ToJSON(x)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return fmt.Errorf("writing %T to %s: %w", x, path, err)
	}
	return nil
}

// create CSV writer
func CreateCSVWriter(path string) (*csv.Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating csv %s: %w", path, err)
	}
	return csv.NewWriter(file), nil
}
