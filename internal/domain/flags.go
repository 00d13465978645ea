package domain

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Flag is a single compiler flag. A Value of true renders as a bare flag.
type Flag struct {
	Value any
	Name  string
}

// Flags is an ordered set of compiler flags.
type Flags []Flag

// FlagsFromMap converts an unordered mapping into Flags sorted by name.
func FlagsFromMap(m map[string]any) Flags {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	flags := make(Flags, 0, len(names))
	for _, name := range names {
		flags = append(flags, Flag{Name: name, Value: m[name]})
	}
	return flags
}

// Get returns the value of the named flag.
func (f Flags) Get(name string) (any, bool) {
	for _, flag := range f {
		if flag.Name == name {
			return flag.Value, true
		}
	}
	return nil, false
}

// Set returns a copy of f with name set to value. An existing flag keeps its position.
func (f Flags) Set(name string, value any) Flags {
	out := make(Flags, len(f), len(f)+1)
	copy(out, f)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Flag{Name: name, Value: value})
}

// Merge returns f with overrides applied; overrides win per name.
func (f Flags) Merge(overrides Flags) Flags {
	out := make(Flags, len(f))
	copy(out, f)
	for _, o := range overrides {
		out = out.Set(o.Name, o.Value)
	}
	return out
}

// Render formats the flags for appending to a command prefix.
//
// Falsy values are dropped, true renders as "-name" and anything else as
// "-name=value". Underscores in names become hyphens. The result starts with a
// single space unless it is empty. Values are not quoted.
func (f Flags) Render() string {
	var b strings.Builder
	for _, flag := range f {
		if isFalsy(flag.Value) {
			continue
		}
		b.WriteString(" -")
		b.WriteString(strings.ReplaceAll(flag.Name, "_", "-"))
		if v, ok := flag.Value.(bool); ok && v {
			continue
		}
		b.WriteString("=")
		b.WriteString(fmt.Sprint(flag.Value))
	}
	return b.String()
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
