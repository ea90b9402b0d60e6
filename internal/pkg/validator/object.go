package validator

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// IsValidID reports whether id can identify a stored record.
func IsValidID(id int64) bool {
	return id > 0
}

// ParseID converts a path or query value into an id. Anything that is not a
// base-10 integer yields 0, which IsValidID rejects.
func ParseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// IsValidStrings reports whether every argument has non-whitespace content.
func IsValidStrings(values ...string) bool {
	for _, v := range values {
		if IsEmpty(v) {
			return false
		}
	}
	return true
}

// IsValidObject reports whether every exported field of the struct obj, other
// than those whose json names are listed in excluded, holds a usable value:
// pointers, interfaces, maps and slices are non-nil, strings are not blank
// and floats are not NaN.
func IsValidObject(obj any, excluded ...string) bool {
	v, ok := structValue(obj)
	if !ok {
		return false
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, key := range excluded {
		skip[key] = struct{}{}
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if _, ok := skip[fieldName(field)]; ok {
			continue
		}
		if !isUsable(v.Field(i)) {
			return false
		}
	}
	return true
}

// IsPropertyOf reports whether key names a field of entity, using the same
// names the entity is serialized with.
func IsPropertyOf(key string, entity any) bool {
	v, ok := structValue(entity)
	if !ok {
		return false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.IsExported() && fieldName(field) == key {
			return true
		}
	}
	return false
}

// IsEmptyObject reports whether obj carries no data. Repositories signal "no
// record" with a zero-valued entity, so this is the absence check.
func IsEmptyObject(obj any) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

func structValue(obj any) (reflect.Value, bool) {
	if obj == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}

func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func isUsable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return false
		}
		return isUsable(v.Elem())
	case reflect.Map, reflect.Slice:
		return !v.IsNil()
	case reflect.String:
		return !IsEmpty(v.String())
	case reflect.Float32, reflect.Float64:
		return !math.IsNaN(v.Float())
	default:
		return true
	}
}
