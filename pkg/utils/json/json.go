// Package json routes all JSON encoding through sonic.
package json

import (
	"github.com/bytedance/sonic"
)

// Marshal encodes v as JSON.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalString encodes v as a JSON string.
func MarshalString(v interface{}) (string, error) {
	return sonic.MarshalString(v)
}

// MarshalIndent encodes v as indented JSON.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// UnmarshalString decodes a JSON string into v.
func UnmarshalString(data string, v interface{}) error {
	return sonic.UnmarshalString(data, v)
}
