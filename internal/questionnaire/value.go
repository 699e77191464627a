package questionnaire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Shape distinguishes the variants of Value.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeList
	ShapeFields
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapeFields:
		return "fields"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Value is an answer value: a scalar string, a list of strings (multi-select
// choices or attached file names) or a map of child id to scalar (groups).
// Values are immutable; accessors return copies.
type Value struct {
	shape  Shape
	scalar string
	list   []string
	fields map[string]string
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{shape: ShapeScalar, scalar: s}
}

// List returns a list value holding a copy of items.
func List(items ...string) Value {
	return Value{shape: ShapeList, list: append([]string{}, items...)}
}

// Fields returns a group value holding a copy of m.
func Fields(m map[string]string) Value {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{shape: ShapeFields, fields: cp}
}

// DefaultValue is the empty value for kind.
func DefaultValue(kind Kind) Value {
	switch kind.Shape() {
	case ShapeList:
		return List()
	case ShapeFields:
		return Fields(nil)
	default:
		return Scalar("")
	}
}

func (v Value) Shape() Shape { return v.shape }

// String returns the scalar text, or a readable rendering for other shapes.
func (v Value) String() string {
	switch v.shape {
	case ShapeList:
		return strings.Join(v.list, ", ")
	case ShapeFields:
		keys := v.keys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+v.fields[k])
		}
		return strings.Join(parts, "; ")
	default:
		return v.scalar
	}
}

// Items returns a copy of the list entries.
func (v Value) Items() []string {
	return append([]string{}, v.list...)
}

// Field returns the value of one group child.
func (v Value) Field(id string) string {
	return v.fields[id]
}

// FieldMap returns a copy of the group entries.
func (v Value) FieldMap() map[string]string {
	cp := make(map[string]string, len(v.fields))
	for k, x := range v.fields {
		cp[k] = x
	}
	return cp
}

// Has reports whether a list value contains item.
func (v Value) Has(item string) bool {
	for _, x := range v.list {
		if x == item {
			return true
		}
	}
	return false
}

// Toggle returns a list value with item added or removed.
func (v Value) Toggle(item string) Value {
	if v.Has(item) {
		out := make([]string, 0, len(v.list))
		for _, x := range v.list {
			if x != item {
				out = append(out, x)
			}
		}
		return List(out...)
	}
	return List(append(v.Items(), item)...)
}

// WithField returns a group value with one child set.
func (v Value) WithField(id, value string) Value {
	m := v.FieldMap()
	m[id] = value
	return Fields(m)
}

// IsEmpty reports whether the value carries no user input. Group values with only
// blank children count as empty.
func (v Value) IsEmpty() bool {
	switch v.shape {
	case ShapeList:
		return len(v.list) == 0
	case ShapeFields:
		for _, x := range v.fields {
			if x != "" {
				return false
			}
		}
		return true
	default:
		return v.scalar == ""
	}
}

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	if v.shape != o.shape {
		return false
	}
	switch v.shape {
	case ShapeList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case ShapeFields:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for k, x := range v.fields {
			if y, ok := o.fields[k]; !ok || x != y {
				return false
			}
		}
		return true
	default:
		return v.scalar == o.scalar
	}
}

func (v Value) keys() []string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes scalars as strings, lists as arrays and groups as objects.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.shape {
	case ShapeList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case ShapeFields:
		if v.fields == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.fields)
	default:
		return json.Marshal(v.scalar)
	}
}

// UnmarshalJSON infers the shape from the JSON type. Numbers and booleans are
// accepted as scalars; nested group values must be strings or numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty value")
	}
	switch data[0] {
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("list value: %w", err)
		}
		*v = List(items...)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("group value: %w", err)
		}
		m := make(map[string]string, len(raw))
		for k, r := range raw {
			s, err := scalarText(r)
			if err != nil {
				return fmt.Errorf("group value %q: %w", k, err)
			}
			m[k] = s
		}
		*v = Fields(m)
	case 'n':
		*v = Scalar("")
	default:
		s, err := scalarText(data)
		if err != nil {
			return err
		}
		*v = Scalar(s)
	}
	return nil
}

func scalarText(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return strconv.FormatBool(b), nil
	}
	return "", fmt.Errorf("not a scalar: %s", data)
}

// ErrInvalidValue is returned when a value does not fit its question.
var ErrInvalidValue = errors.New("invalid value")

const dateLayout = "2006-01-02"

// Validate checks that v has the shape of q's kind and that its content is
// acceptable: options exist, numbers parse, dates are YYYY-MM-DD and group keys
// name children.
func (q *Question) Validate(v Value) error {
	if v.shape != q.Kind.Shape() {
		return fmt.Errorf("%w: question %q wants a %s value, got %s",
			ErrInvalidValue, q.ID, q.Kind.Shape(), v.shape)
	}
	switch q.Kind {
	case KindSingleSelect:
		if v.scalar == "" {
			return nil
		}
		if _, ok := q.Option(v.scalar); !ok {
			return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidValue, v.scalar, q.ID)
		}
	case KindMultiSelect:
		seen := make(map[string]bool, len(v.list))
		for _, item := range v.list {
			if _, ok := q.Option(item); !ok {
				return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidValue, item, q.ID)
			}
			if seen[item] {
				return fmt.Errorf("%w: %q selected twice", ErrInvalidValue, item)
			}
			seen[item] = true
		}
	case KindFile:
		for _, name := range v.list {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: blank file name", ErrInvalidValue)
			}
		}
	case KindNumber:
		if v.scalar != "" {
			if _, err := parseFinite(v.scalar); err != nil {
				return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v.scalar)
			}
		}
	case KindCurrency:
		if v.scalar != "" {
			if _, err := ParseAmount(v.scalar); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
		}
	case KindDate:
		if v.scalar != "" {
			if _, err := time.Parse(dateLayout, v.scalar); err != nil {
				return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidValue, v.scalar)
			}
		}
	case KindGroup:
		for id, x := range v.fields {
			c, ok := q.Child(id)
			if !ok {
				return fmt.Errorf("%w: %q is not part of group %q", ErrInvalidValue, id, q.ID)
			}
			if err := c.Validate(Scalar(x)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseAmount parses a money amount such as "£1,250.50" or "300".
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "£")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)
	f, err := parseFinite(clean)
	if err != nil {
		return 0, fmt.Errorf("%q is not an amount", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return f, nil
}

// parseFinite parses a decimal number, rejecting NaN and infinities.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return f, nil
}
