/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/mapstructure"

	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/registry"
	"github.com/suparena/attrdao/storagemodels"
)

// ItemNameAttribute is the pseudo-attribute carrying the item key.
// Tag a field with it to receive the key, e.g. `attr:"itemName()"`.
const ItemNameAttribute = "itemName()"

// DefaultTagName is the struct tag read by StructMapper.
const DefaultTagName = "attr"

var (
	timeType     = reflect.TypeOf(time.Time{})
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
	dateType     = reflect.TypeOf(strfmt.Date{})
)

// StructMapper coerces raw attributes into the fields of struct type T.
//
// Fields are matched by the tag (default "attr") or, without a tag, by a
// case-insensitive field name. Numbers are parsed base 10 so zero-padded
// values keep their decimal meaning; dates accept RFC 3339 and the other
// layouts understood by strfmt. A multi-valued attribute fills a slice
// field, or its first value is used for a scalar field.
type StructMapper[T any] struct {
	tagName string
	strict  bool
}

// StructOption configures a StructMapper.
type StructOption func(*structConfig)

type structConfig struct {
	tagName string
	strict  bool
}

// WithTagName reads field names from a different struct tag, e.g. "json".
func WithTagName(name string) StructOption {
	return func(c *structConfig) {
		c.tagName = name
	}
}

// WithStrict makes the mapper fail when an attribute has no matching field.
func WithStrict() StructOption {
	return func(c *structConfig) {
		c.strict = true
	}
}

// NewStructMapper builds a StructMapper for T.
func NewStructMapper[T any](opts ...StructOption) *StructMapper[T] {
	cfg := structConfig{tagName: DefaultTagName}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &StructMapper[T]{
		tagName: cfg.tagName,
		strict:  cfg.strict,
	}
}

// Map implements Mapper.
func (m *StructMapper[T]) Map(item storagemodels.Item) (T, error) {
	input := make(map[string]any, len(item.Attributes)+1)
	for name, values := range item.Attributes.ToMap() {
		if len(values) == 1 {
			input[name] = values[0]
		} else {
			input[name] = values
		}
	}

	var result T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &result,
		TagName:          m.tagName,
		WeaklyTypedInput: true,
		ErrorUnused:      m.strict,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			firstValueHook,
			dateHook,
			decimalHook,
		),
	})
	if err != nil {
		var zero T
		return zero, errors.NewMappingError(registry.SimpleName[T](), item.Name, err)
	}

	// Inject the key only when a field asks for it, so strict mode accepts it.
	if hasItemNameField(reflect.TypeOf(result), m.tagName) {
		input[ItemNameAttribute] = item.Name
	}

	if err := decoder.Decode(input); err != nil {
		var zero T
		return zero, errors.NewMappingError(registry.SimpleName[T](), item.Name, err)
	}
	return result, nil
}

func hasItemNameField(t reflect.Type, tagName string) bool {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get(tagName), ",")
		if name == ItemNameAttribute {
			return true
		}
	}
	return false
}

// firstValueHook collapses a multi-valued attribute when the target is scalar.
func firstValueHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	values, ok := data.([]string)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Slice, reflect.Array, reflect.Interface, reflect.Pointer:
		return data, nil
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

// dateHook parses strings into time.Time, strfmt.DateTime and strfmt.Date.
func dateHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}

	switch to {
	case dateTimeType:
		return strfmt.ParseDateTime(s)
	case timeType:
		dt, err := strfmt.ParseDateTime(s)
		if err != nil {
			return nil, err
		}
		return time.Time(dt), nil
	case dateType:
		var d strfmt.Date
		if err := d.UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		return d, nil
	}
	return data, nil
}

// decimalHook parses numeric strings base 10. Plain weak decoding would read
// "010" as octal. A blank value decodes to zero.
func decimalHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return reflect.Zero(to).Interface(), nil
		}
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if to == reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		n, err := strconv.ParseInt(s, 10, to.Bits())
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as %s: %w", s, to, err)
		}
		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, to.Bits())
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as %s: %w", s, to, err)
		}
		return n, nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, to.Bits())
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as %s: %w", s, to, err)
		}
		return f, nil
	}
	return data, nil
}
