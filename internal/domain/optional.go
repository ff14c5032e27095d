package domain

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes "not provided" from "provided", including a
// provided zero value or null.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

func Some[T any](v T) Optional[T] { return Optional[T]{value: v, set: true} }

func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was provided as a JSON null.
func (o Optional[T]) IsNull() bool { return o.null }

func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// UnmarshalJSON marks the field as provided. A JSON null is a provided value:
// for pointer types it decodes to nil, other types keep their zero value and
// report IsNull.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.value = v
	o.set = true
	o.null = bytes.Equal(bytes.TrimSpace(b), []byte("null"))
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
