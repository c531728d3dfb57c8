package model

import (
	"fmt"
	"reflect"
	"strings"
)

// Category names a kind of smell. It may hold either a concrete smell type
// ("UncommunicativeParameterName") or a smell family ("UncommunicativeName").
type Category string

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// NormalizeCategory turns whatever a caller used to name a smell into a
// bare Category. Accepted forms are plain or namespaced strings
// ("smells::FeatureEnvy", "smells.FeatureEnvy"), Category values,
// fmt.Stringer implementations, reflect.Type values, and values of a
// detector type, whose type name is used.
func NormalizeCategory(v any) Category {
	var text string
	switch c := v.(type) {
	case Category:
		text = string(c)
	case string:
		text = c
	case reflect.Type:
		text = typeName(c)
	case fmt.Stringer:
		text = c.String()
	case nil:
		return ""
	default:
		text = typeName(reflect.TypeOf(v))
	}
	return Category(lastSegment(text))
}

// typeName returns the declared name of t, looking through pointers.
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// lastSegment strips every namespace qualifier, whether written with "::"
// or with ".". Trailing separators are ignored.
func lastSegment(s string) string {
	s = strings.TrimRight(strings.ReplaceAll(s, "::", "."), ".")
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
