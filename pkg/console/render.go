package console

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/flowlint/flowlint/pkg/logger"
)

var renderLog = logger.New("console:render")

// RenderStruct renders a Go struct to console output using reflection and
// struct tags. Structs become aligned key-value blocks, slices of structs
// become tables via RenderTable.
//
// Struct tags:
//   - `console:"title:My Title"` - section title for nested structs and slices
//   - `console:"header:Column"` - display name for a field or table column
//   - `console:"format:filesize"` - render int fields with FormatFileSize
//   - `console:"format:duration"` - render time.Duration fields with FormatDuration
//   - `console:"format:number"` - render int fields with FormatNumber
//   - `console:"omitempty"` - skip zero values
//   - `console:"-"` - skip the field entirely
func RenderStruct(v any) string {
	renderLog.Printf("Rendering struct: type=%T", v)
	var output strings.Builder
	renderValue(reflect.ValueOf(v), "", &output)
	return output.String()
}

func renderValue(val reflect.Value, title string, output *strings.Builder) {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		renderStructValue(val, title, output)
	case reflect.Slice, reflect.Array:
		renderSliceValue(val, title, output)
	}
}

func renderStructValue(val reflect.Value, title string, output *strings.Builder) {
	typ := val.Type()

	if title != "" {
		fmt.Fprintf(output, "%s\n\n", render(titleStyle, title))
	}

	type scalarField struct {
		name  string
		value string
	}
	var scalars []scalarField
	maxNameLen := 0

	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)
		tag := parseConsoleTag(fieldType.Tag.Get("console"))

		if tag.skip || (tag.omitempty && field.IsZero()) {
			continue
		}

		name := fieldType.Name
		if tag.header != "" {
			name = tag.header
		}

		kind := field.Kind()
		if kind == reflect.Slice || kind == reflect.Array || (kind == reflect.Struct && fieldType.Type != reflect.TypeOf(time.Time{})) {
			continue
		}

		scalars = append(scalars, scalarField{name: name, value: formatFieldValue(field, tag)})
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	for _, field := range scalars {
		fmt.Fprintf(output, "  %-*s: %s\n", maxNameLen, field.name, field.value)
	}
	output.WriteString("\n")

	// Nested slices and structs render after the scalar block so the summary
	// reads top to bottom.
	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)
		tag := parseConsoleTag(fieldType.Tag.Get("console"))

		if tag.skip || (tag.omitempty && field.IsZero()) {
			continue
		}

		kind := field.Kind()
		if kind != reflect.Slice && kind != reflect.Array && kind != reflect.Struct {
			continue
		}
		if kind == reflect.Struct && fieldType.Type == reflect.TypeOf(time.Time{}) {
			continue
		}

		subTitle := tag.title
		if subTitle == "" {
			subTitle = fieldType.Name
			if tag.header != "" {
				subTitle = tag.header
			}
		}
		renderValue(field, subTitle, output)
	}
}

func renderSliceValue(val reflect.Value, title string, output *strings.Builder) {
	if val.Len() == 0 {
		return
	}

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() != reflect.Struct {
		if title != "" {
			fmt.Fprintf(output, "%s\n\n", render(titleStyle, title))
		}
		for i := range val.Len() {
			fmt.Fprintf(output, "  • %v\n", val.Index(i).Interface())
		}
		output.WriteString("\n")
		return
	}

	config := TableConfig{Title: title}
	var fieldIndices []int
	var fieldTags []consoleTag

	for i := range elemType.NumField() {
		fieldType := elemType.Field(i)
		tag := parseConsoleTag(fieldType.Tag.Get("console"))
		if tag.skip {
			continue
		}

		name := fieldType.Name
		if tag.header != "" {
			name = tag.header
		}
		config.Headers = append(config.Headers, name)
		fieldIndices = append(fieldIndices, i)
		fieldTags = append(fieldTags, tag)
	}

	for i := range val.Len() {
		elem := val.Index(i)
		for elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				break
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			continue
		}

		row := make([]string, 0, len(fieldIndices))
		for j, idx := range fieldIndices {
			row = append(row, formatFieldValue(elem.Field(idx), fieldTags[j]))
		}
		config.Rows = append(config.Rows, row)
	}

	output.WriteString(RenderTable(config))
	output.WriteString("\n")
}

// consoleTag represents a parsed console struct tag.
type consoleTag struct {
	title     string
	header    string
	format    string
	omitempty bool
	skip      bool
}

func parseConsoleTag(tag string) consoleTag {
	result := consoleTag{}
	if tag == "-" {
		result.skip = true
		return result
	}

	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "omitempty":
			result.omitempty = true
		default:
			if after, ok := strings.CutPrefix(part, "title:"); ok {
				result.title = after
			} else if after, ok := strings.CutPrefix(part, "header:"); ok {
				result.header = after
			} else if after, ok := strings.CutPrefix(part, "format:"); ok {
				result.format = after
			}
		}
	}
	return result
}

func formatFieldValue(val reflect.Value, tag consoleTag) string {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return "-"
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		return "-"
	}

	if val.CanInterface() {
		switch v := val.Interface().(type) {
		case time.Duration:
			return FormatDuration(v)
		case time.Time:
			return v.Format("2006-01-02 15:04:05")
		}
	}

	switch tag.format {
	case "filesize":
		if val.CanInt() {
			return FormatFileSize(val.Int())
		}
	case "number":
		if val.CanInt() {
			return FormatNumber(int(val.Int()))
		}
	}

	if val.Kind() == reflect.String && val.String() == "" {
		return "-"
	}
	return fmt.Sprintf("%v", val.Interface())
}
