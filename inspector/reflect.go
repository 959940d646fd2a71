// Package inspector turns tagged component structs into the text lines of
// the debug overlay and the console state dump.
package inspector

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Widget selects how a field is formatted.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Field represents a component field with formatting hints.
type Field struct {
	Name    string
	Value   interface{}
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"angle"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to extract the exported fields of a component.
func ExtractFields(component interface{}) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}

		fv := v.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	if v.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// Format renders the field value according to its widget.
func (f Field) Format() string {
	switch f.Widget {
	case WidgetAngle:
		if a, ok := f.Value.(float64); ok {
			return fmt.Sprintf("%.1f deg", wrapDegrees(a))
		}
	case WidgetBool:
		if b, ok := f.Value.(bool); ok && b {
			return "yes"
		}
		return "no"
	}
	return FormatValue(f.Value, f.Options["fmt"])
}

// FormatValue formats a field value as a string.
func FormatValue(value interface{}, fmtStr string) string {
	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// Dump renders components as "Type.Field: value" lines wrapped in a titled
// block. Components implementing fmt.Stringer collapse to a single line.
func Dump(title string, components ...interface{}) []string {
	lines := []string{title + " {"}
	for _, c := range components {
		if isNil(c) {
			continue
		}
		name := typeName(c)
		if s, ok := c.(fmt.Stringer); ok {
			lines = append(lines, fmt.Sprintf("  %s: %s", name, s.String()))
			continue
		}
		for _, f := range ExtractFields(c) {
			lines = append(lines, fmt.Sprintf("  %s.%s: %s", name, f.Name, f.Format()))
		}
	}
	return append(lines, "}")
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// typeName returns the bare type name of a value or pointer.
func typeName(v interface{}) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
