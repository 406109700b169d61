package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type's name to its string-to-value table.
var registry = map[string]any{}

type table[T comparable] map[string]T

// New registers value under its string form and returns it, so the var
// declaration of an enum value doubles as its registration.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	name := v.Type().Name()
	if _, ok := registry[name]; !ok {
		registry[name] = table[T]{}
	}

	registry[name].(table[T])[v.String()] = value
	return value
}

// ToEnum parses s into a registered value of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	t, ok := registry[reflect.TypeOf(zero).Name()]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := t.(table[T])[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value, nil
}
