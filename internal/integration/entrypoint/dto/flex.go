package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The action endpoint exchanges numbers as JSON strings, the way a relational
// driver returns them. These types accept a number or a string on input and
// always emit a string.

// FlexFloat is a float64 encoded as a JSON string.
type FlexFloat float64

// FlexInt is an int encoded as a JSON string.
type FlexInt int

// FlexBool is a bool encoded as "1" or "0". It accepts 1, "1", true and "true".
type FlexBool bool

func unquote(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	return string(data), true
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s, ok := unquote(data)
	if !ok {
		return fmt.Errorf("invalid number %s", data)
	}
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*f = FlexFloat(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(f), 'f', -1, 64))
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	if float64(f) != float64(int(f)) {
		return fmt.Errorf("invalid integer %s", data)
	}
	*i = FlexInt(int(f))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(i)))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s, ok := unquote(data)
	if !ok {
		return fmt.Errorf("invalid flag %s", data)
	}
	switch strings.ToLower(s) {
	case "1", "true":
		*b = true
	case "0", "false", "", "null":
		*b = false
	default:
		return fmt.Errorf("invalid flag %q", s)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte(`"1"`), nil
	}
	return []byte(`"0"`), nil
}
