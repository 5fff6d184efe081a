package main

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fatih/structs"
	"github.com/goccy/go-yaml"
)

const (
	JSON_INDENT string = "    "

	// TEXT_TAG picks the fields shown on text output.
	TEXT_TAG string = "lean"
)

var outputs = map[string]func(w io.Writer, v any, many bool) error{
	"text": writeText,
	"json": writeJSON,
	"yaml": writeYAML,
}

// printRecord writes a single record in the format chosen with --output.
func printRecord(w io.Writer, v any) error {
	return outputs[outputFlag](w, v, false)
}

// printRecords writes a list of records. Text output puts each on its own
// line; an empty list prints nothing on text output.
func printRecords[T any](w io.Writer, records []T) error {
	return outputs[outputFlag](w, records, true)
}

func writeJSON(w io.Writer, v any, _ bool) error {
	b, err := json.MarshalIndent(v, "", JSON_INDENT)
	if err != nil {
		return fmt.Errorf("error marshalling to JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func writeYAML(w io.Writer, v any, _ bool) error {
	b, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("error marshalling to YAML: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func writeText(w io.Writer, v any, many bool) error {
	if !many {
		_, err := fmt.Fprintln(w, textLine(v))
		return err
	}

	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		if _, err := fmt.Fprintln(w, textLine(rv.Index(i).Interface())); err != nil {
			return err
		}
	}
	return nil
}

// textLine renders the fields of v carrying a TEXT_TAG as space separated
// key=value pairs, in declaration order. Embedded structs are flattened.
func textLine(v any) string {
	s := structs.New(v)
	s.TagName = TEXT_TAG

	m := s.Map()

	kvs := make([]string, 0, len(m))
	for _, f := range s.Fields() {
		if f.IsEmbedded() {
			if line := textLine(f.Value()); line != "" {
				kvs = append(kvs, line)
			}
			continue
		}

		name, _, _ := strings.Cut(f.Tag(TEXT_TAG), ",")
		if name == "" {
			name = f.Name()
		}
		val, ok := m[name]
		if !ok {
			continue
		}
		kvs = append(kvs, fmt.Sprintf("%s=%v", name, deref(val)))
	}

	return strings.Join(kvs, " ")
}

// deref keeps pointers to plain values from being printed as addresses.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}
