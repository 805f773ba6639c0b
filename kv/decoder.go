package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/k0sproject/platform/log"
)

// LineReader yields lines one at a time and io.EOF at the end of input.
type LineReader interface {
	ReadLine() (string, error)
}

type assigner interface {
	assign(key, value string) error
}

type mapAssigner struct {
	m map[string]string
}

func (ma *mapAssigner) assign(key, value string) error {
	log.Trace(context.Background(), "kv decoder: assigning to map", slog.String(log.KeyKey, key), slog.String(log.KeyValue, value))
	ma.m[key] = value
	return nil
}

type fieldInfo struct {
	key      string
	name     string
	value    reflect.Value
	ignore   bool
	catchAll bool
}

func newFieldInfo(field reflect.Value, structField reflect.StructField) fieldInfo {
	info := fieldInfo{
		value: field,
		name:  structField.Name,
	}

	tag, _, _ := strings.Cut(structField.Tag.Get("kv"), ",")
	switch tag {
	case "-":
		info.ignore = true
	case "*":
		info.catchAll = true
	default:
		info.key = tag
	}
	return info
}

type reflectAssigner struct {
	obj      any
	catchAll assigner
	fields   []fieldInfo
	strict   bool
}

func (ra *reflectAssigner) setup() error {
	val := reflect.ValueOf(ra.obj)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return errors.New("object must be a non-nil pointer")
	}

	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return errors.New("object must be a pointer to a struct")
	}

	typ := elem.Type()
	for i := 0; i < elem.NumField(); i++ {
		info := newFieldInfo(elem.Field(i), typ.Field(i))
		switch {
		case info.ignore:
			continue
		case info.catchAll:
			if ra.catchAll != nil {
				return errors.New("multiple fields with kv tag *")
			}
			if err := ra.setupCatchAll(info.value); err != nil {
				return fmt.Errorf("field %s: %w", info.name, err)
			}
			continue
		}
		if !info.value.CanSet() {
			continue
		}
		if info.value.Kind() != reflect.String {
			return fmt.Errorf("field %s: unsupported type %v", info.name, info.value.Kind())
		}
		ra.fields = append(ra.fields, info)
	}

	return nil
}

func (ra *reflectAssigner) setupCatchAll(field reflect.Value) error {
	if field.Kind() != reflect.Map {
		return errors.New("field with kv tag * must be a map")
	}
	if !field.CanSet() {
		return errors.New("field is unexported")
	}
	if field.IsNil() {
		field.Set(reflect.MakeMap(field.Type()))
	}
	mapObj, ok := field.Interface().(map[string]string)
	if !ok {
		return errors.New("field with kv tag * must be a map of string to string")
	}
	ra.catchAll = &mapAssigner{m: mapObj}
	return nil
}

func (ra *reflectAssigner) getInfo(key string) (fieldInfo, bool) {
	for _, info := range ra.fields {
		if info.key == key {
			return info, true
		}
		if info.key == "" && info.name == key {
			return info, true
		}
	}
	return fieldInfo{}, false
}

func (ra *reflectAssigner) assign(key, value string) error {
	info, ok := ra.getInfo(key)
	if !ok {
		if ra.catchAll != nil {
			log.Trace(context.Background(), "kv decoder: assigning to catch all", slog.String(log.KeyKey, key), slog.String(log.KeyValue, value))
			return ra.catchAll.assign(key, value)
		}
		if ra.strict {
			return fmt.Errorf("unknown field for key %q", key)
		}
		return nil
	}
	log.Trace(context.Background(), "kv decoder: assigning field", slog.String("field", info.name), slog.String(log.KeyValue, value))
	info.value.SetString(value)
	return nil
}

// Decoder reads KEY=VALUE lines into a map or a struct, similar to the encoding/json package.
//
// Struct fields are matched with the tag format `kv:"KEY"`. Untagged fields are
// matched by their field name. A field tagged "-" is ignored and a field tagged
// "*" must be a map[string]string that receives all keys that are not otherwise
// defined. Only string fields are supported.
//
// Lines are trimmed of surrounding whitespace. Empty lines, comment lines and
// lines without a separator are skipped. Values have one pair of wrapping double
// quotes removed. A later occurrence of a key overwrites an earlier one.
type Decoder struct {
	r            LineReader
	fdelim       rune
	commentstart string
	assigner     assigner
	strict       bool
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r LineReader) *Decoder {
	return &Decoder{r: r, fdelim: '=', commentstart: "#"}
}

// FieldDelimiter sets the key-value separator, '=' by default.
func (d *Decoder) FieldDelimiter(delim rune) {
	d.fdelim = delim
}

// CommentStart sets the comment line prefix, "#" by default. An empty string disables comments.
func (d *Decoder) CommentStart(comment string) {
	d.commentstart = comment
}

// Strict makes the decoder fail on keys that have no matching struct field.
func (d *Decoder) Strict() {
	d.strict = true
}

func (d *Decoder) setAssigner(obj any) error {
	switch v := obj.(type) {
	case map[string]string:
		if v == nil {
			return errors.New("map must be non-nil")
		}
		d.assigner = &mapAssigner{m: v}
	default:
		ra := &reflectAssigner{obj: obj, strict: d.strict}
		if err := ra.setup(); err != nil {
			return err
		}
		d.assigner = ra
	}
	return nil
}

// Decode reads all of the lines from the input and stores the key-value pairs in the map or struct pointed to by obj.
// The input is always read until io.EOF unless a read fails, in which case the read error is returned as is.
func (d *Decoder) Decode(obj any) error {
	if err := d.setAssigner(obj); err != nil {
		return fmt.Errorf("kv decoder: %w", err)
	}

	var assignErr error
	for {
		line, readErr := d.r.ReadLine()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return assignErr
			}
			log.Trace(context.Background(), "kv decoder: read failed", log.ErrorAttr(readErr))
			return readErr
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if d.commentstart != "" && strings.HasPrefix(line, d.commentstart) {
			continue
		}

		k, v, ok := SplitRune(line, d.fdelim)
		if !ok {
			log.Trace(context.Background(), "kv decoder: skipping line without separator", slog.String(log.KeyLine, line))
			continue
		}
		if err := d.assigner.assign(k, Unquote(v)); err != nil && d.strict && assignErr == nil {
			// keep draining the input, report the first failure at the end
			assignErr = fmt.Errorf("assign: %w", err)
		}
	}
}
