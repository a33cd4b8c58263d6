// Package validation evaluates declarative per-field rule tables against raw
// request values and collects failures as a field to messages map.
package validation

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

// Errors maps a field name to its failure messages. A non-empty Errors is
// returned as an error by the systems that validate input.
type Errors map[string][]string

// Add appends msg to the messages of field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

func (e Errors) Error() string {
	return "validation failed: " + strings.Join(e.Fields(), ", ")
}

// Err returns e as an error, or nil when there are no failures.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// As extracts Errors from err.
func As(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// Value is a raw request field. Present is false when the field was not
// supplied at all; a present field with a nil Raw was an explicit null.
type Value struct {
	Present bool
	Raw     any
}

// Of wraps a supplied raw value.
func Of(raw any) Value {
	return Value{Present: true, Raw: raw}
}

// Null is an explicitly supplied null.
func Null() Value {
	return Value{Present: true}
}

// IsNull reports whether the value was supplied as null.
func (v Value) IsNull() bool {
	return v.Present && v.Raw == nil
}

// String returns the raw value when it is a string.
func (v Value) String() (string, bool) {
	s, ok := v.Raw.(string)
	return s, ok
}

func (v Value) set() bool {
	return v.Present && v.Raw != nil
}

// Rule returns a failure message, or "" when v passes.
type Rule func(v Value) string

// Field is one row of a rule table. Rules run in order and stop at the
// first failure.
type Field struct {
	Name  string
	Rules []Rule
}

// Set is a rule table.
type Set []Field

// Check evaluates every field of the set against values.
func (s Set) Check(values map[string]Value) Errors {
	errs := Errors{}
	for _, f := range s {
		v := values[f.Name]
		for _, rule := range f.Rules {
			if msg := rule(v); msg != "" {
				errs.Add(f.Name, msg)
				break
			}
		}
	}
	return errs
}

// Required fails on missing, null, or blank values.
func Required(msg string) Rule {
	return func(v Value) string {
		if !v.set() {
			return msg
		}
		if s, ok := v.String(); ok && strings.TrimSpace(s) == "" {
			return msg
		}
		return ""
	}
}

// Filled fails when the field is present but null or blank. Missing passes.
func Filled(msg string) Rule {
	return func(v Value) string {
		if !v.Present {
			return ""
		}
		if v.Raw == nil {
			return msg
		}
		if s, ok := v.String(); ok && strings.TrimSpace(s) == "" {
			return msg
		}
		return ""
	}
}

// String fails when a supplied value is not a string.
func String(msg string) Rule {
	return func(v Value) string {
		if !v.set() {
			return ""
		}
		if _, ok := v.String(); !ok {
			return msg
		}
		return ""
	}
}

// MaxRunes fails when a string holds more than n Unicode code points.
func MaxRunes(n int, msg string) Rule {
	return func(v Value) string {
		s, ok := v.String()
		if !ok {
			return ""
		}
		if utf8.RuneCountInString(s) > n {
			return msg
		}
		return ""
	}
}

// OneOf fails when a supplied value is not one of allowed.
func OneOf(allowed []string, msg string) Rule {
	return func(v Value) string {
		if !v.set() {
			return ""
		}
		s, ok := v.String()
		if !ok || !slices.Contains(allowed, s) {
			return msg
		}
		return ""
	}
}

// Email fails when a supplied string is not a bare email address.
func Email(msg string) Rule {
	return func(v Value) string {
		s, ok := v.String()
		if !ok || s == "" {
			return ""
		}
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s {
			return msg
		}
		return ""
	}
}
