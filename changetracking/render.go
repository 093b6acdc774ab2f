package changetracking

import (
	"fmt"
	"reflect"
	"strings"
)

// DisplayPlaceholder is rendered in place of absent (nil) values.
const DisplayPlaceholder = "<none>"

const noChangesDescription = "No changes"

// DisplayString renders a value for human-readable change descriptions.
//
// Values implementing fmt.Stringer are rendered through String, everything else
// through fmt.Sprint. Nil values, including typed nil pointers, render as DisplayPlaceholder.
func DisplayString(value any) string {
	if isNil(value) {
		return DisplayPlaceholder
	}

	if stringer, ok := value.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprint(value)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func joinDisplayStrings[T any](items []T) string {
	rendered := make([]string, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, DisplayString(item))
	}

	return strings.Join(rendered, ", ")
}
