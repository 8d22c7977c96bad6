// Package gstvalue implements the typed scalar values used in project
// documents and capability strings.
//
// Values are written in the GStreamer structure notation, a parenthesized
// type tag followed by the payload:
//
//	(gint64)1000000000
//	(int)0
//	(double)29.97
//	(boolean)true
//	(string)"My\ Clip"
//	(fraction)30000/1001
//	(fourcc)I420
//
// Ranges, lists and arrays group values of one type:
//
//	(int)[ 1, 2147483647 ]
//	(fourcc){ I420, YV12 }
//	< 1, 2, 3 >
//
// In memory a [Value] is a discriminated union: the tag is kept as a [Kind]
// next to the payload instead of being re-parsed out of text on every access.
package gstvalue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedValue is returned by [Parse] when the tag is unknown or the
// payload does not match the tag.
var ErrMalformedValue = errors.New("malformed typed value")

// Kind is the primitive type of a [Value].
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindUint
	KindInt64
	KindUint64
	KindDouble
	KindBoolean
	KindString
	KindFraction
	KindFourcc
	KindRange
	KindList
	KindArray
)

var kindTags = map[Kind]string{
	KindInt:      "int",
	KindUint:     "guint",
	KindInt64:    "gint64",
	KindUint64:   "guint64",
	KindDouble:   "double",
	KindBoolean:  "boolean",
	KindString:   "string",
	KindFraction: "fraction",
	KindFourcc:   "fourcc",
}

// Containers have no tag of their own; their elements carry it.
var containerNames = map[Kind]string{
	KindRange: "range",
	KindList:  "list",
	KindArray: "array",
}

var brackets = map[Kind][2]byte{
	KindRange: {'[', ']'},
	KindList:  {'{', '}'},
	KindArray: {'<', '>'},
}

// tagAliases maps every tag spelling accepted on input to its kind.
var tagAliases = map[string]Kind{
	"int":     KindInt,
	"gint":    KindInt,
	"i":       KindInt,
	"uint":    KindUint,
	"guint":   KindUint,
	"u":       KindUint,
	"int64":   KindInt64,
	"gint64":  KindInt64,
	"uint64":  KindUint64,
	"guint64": KindUint64,
	"double":  KindDouble,
	"gdouble": KindDouble,
	"float":   KindDouble,
	"gfloat":  KindDouble,
	"d":       KindDouble,
	"f":       KindDouble,
	"boolean": KindBoolean,
	"bool":    KindBoolean,
	"b":       KindBoolean,
	"string":  KindString,
	"s":       KindString,

	"fraction":    KindFraction,
	"GstFraction": KindFraction,
	"fourcc":      KindFourcc,
	"GstFourcc":   KindFourcc,
}

// Tag returns the canonical type tag written for k.
func (k Kind) Tag() string { return kindTags[k] }

// String implements fmt.Stringer.
func (k Kind) String() string {
	if t, ok := kindTags[k]; ok {
		return t
	}
	if n, ok := containerNames[k]; ok {
		return n
	}
	return "invalid"
}

// IsContainer reports whether k groups other values.
func (k Kind) IsContainer() bool {
	_, ok := containerNames[k]
	return ok
}

// IsInteger reports whether k holds an integer payload.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt, KindUint, KindInt64, KindUint64:
		return true
	}
	return false
}

// Value is a typed scalar or a range, list or array of them. The zero
// Value is invalid.
type Value struct {
	kind  Kind
	i     int64 // also the numerator of a fraction
	den   int64
	u     uint64
	f     float64
	b     bool
	s     string // also the code of a fourcc
	elems []Value
}

func Int(v int) Value        { return Value{kind: KindInt, i: int64(v)} }
func Uint(v uint) Value      { return Value{kind: KindUint, u: uint64(v)} }
func Int64(v int64) Value    { return Value{kind: KindInt64, i: v} }
func Uint64(v uint64) Value  { return Value{kind: KindUint64, u: v} }
func Double(v float64) Value { return Value{kind: KindDouble, f: v} }
func Bool(v bool) Value      { return Value{kind: KindBoolean, b: v} }
func String(v string) Value  { return Value{kind: KindString, s: v} }

// Fraction returns num/den. The fraction is not reduced.
func Fraction(num, den int) Value {
	return Value{kind: KindFraction, i: int64(num), den: int64(den)}
}

// Fourcc returns a four character code such as "I420".
func Fourcc(code string) Value { return Value{kind: KindFourcc, s: code} }

// Range returns the inclusive range [lo, hi].
func Range(lo, hi Value) Value { return Value{kind: KindRange, elems: []Value{lo, hi}} }

// List returns a list of alternatives.
func List(elems ...Value) Value { return Value{kind: KindList, elems: elems} }

// Array returns an ordered array.
func Array(elems ...Value) Value { return Value{kind: KindArray, elems: elems} }

// Kind returns the value's primitive type.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was constructed or parsed successfully.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsInt64 returns integer payloads widened to int64. Unsigned values that do
// not fit report false.
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt, KindInt64:
		return v.i, true
	case KindUint, KindUint64:
		if v.u > 1<<63-1 {
			return 0, false
		}
		return int64(v.u), true
	}
	return 0, false
}

// AsFloat64 returns numeric payloads as float64.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindDouble:
		return v.f, true
	case KindInt, KindInt64:
		return float64(v.i), true
	case KindUint, KindUint64:
		return float64(v.u), true
	case KindFraction:
		return float64(v.i) / float64(v.den), true
	}
	return 0, false
}

// AsFraction returns the numerator and denominator of a fraction.
func (v Value) AsFraction() (num, den int64, ok bool) {
	return v.i, v.den, v.kind == KindFraction
}

// AsFourcc returns the code of a fourcc value.
func (v Value) AsFourcc() (string, bool) {
	return v.s, v.kind == KindFourcc
}

// Elements returns the members of a range, list or array.
func (v Value) Elements() []Value {
	return append([]Value(nil), v.elems...)
}

// AsBool returns the payload of a boolean value.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBoolean
}

// AsString returns the payload of a string value.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// Payload renders the payload without its type tag. Strings are quoted and
// escaped only when they contain characters that would end an unquoted value.
func (v Value) Payload() string {
	switch v.kind {
	case KindInt, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUint, KindUint64:
		return strconv.FormatUint(v.u, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindString:
		if needsQuoting(v.s) {
			return `"` + Escape(v.s) + `"`
		}
		return v.s
	case KindFraction:
		return strconv.FormatInt(v.i, 10) + "/" + strconv.FormatInt(v.den, 10)
	case KindFourcc:
		return v.s
	case KindRange, KindList, KindArray:
		format := Value.String
		if v.elemKind() != KindInvalid {
			format = Value.Payload
		}
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = format(e)
		}
		b := brackets[v.kind]
		if len(parts) == 0 {
			return string(b[0]) + " " + string(b[1])
		}
		return string(b[0]) + " " + strings.Join(parts, ", ") + " " + string(b[1])
	}
	return ""
}

// elemKind returns the kind shared by all elements of a container, or
// KindInvalid for empty, mixed or nested containers.
func (v Value) elemKind() Kind {
	if len(v.elems) == 0 {
		return KindInvalid
	}
	k := v.elems[0].kind
	for _, e := range v.elems[1:] {
		if e.kind != k {
			return KindInvalid
		}
	}
	if k.IsContainer() {
		return KindInvalid
	}
	return k
}

// String renders v in annotated form, e.g. "(gint64)1234". A container
// whose elements share a type carries that type once, e.g.
// "(int)[ 1, 10 ]"; otherwise each element is annotated.
func (v Value) String() string {
	if !v.IsValid() {
		return ""
	}
	if v.kind.IsContainer() {
		if k := v.elemKind(); k != KindInvalid {
			return "(" + k.Tag() + ")" + v.Payload()
		}
		return v.Payload()
	}
	return "(" + v.kind.Tag() + ")" + v.Payload()
}

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.String() == o.String()
}

// Parse reads an annotated value such as "(gint64)1234". Text without a tag
// is inferred as an integer, then a fraction, then a double, then a boolean,
// and finally a string. A tag in front of a range, list or array applies to
// its elements.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return Value{}, fmt.Errorf("%w: unterminated type tag in %q", ErrMalformedValue, s)
		}
		tag := strings.TrimSpace(s[1:end])
		kind, ok := tagAliases[tag]
		if !ok {
			return Value{}, fmt.Errorf("%w: unknown type tag %q", ErrMalformedValue, tag)
		}
		payload := strings.TrimSpace(s[end+1:])
		if containerOf(payload) != KindInvalid {
			return parseContainer(payload, kind)
		}
		return ParseAs(kind, payload)
	}
	if containerOf(s) != KindInvalid {
		return parseContainer(s, KindInvalid)
	}
	return infer(s), nil
}

// ParseAs reads payload as a value of the given kind. Container kinds read
// untagged or individually tagged elements.
func ParseAs(kind Kind, payload string) (Value, error) {
	switch kind {
	case KindInt:
		n, err := strconv.ParseInt(payload, 0, 32)
		if err != nil {
			return Value{}, malformed(kind, payload)
		}
		return Int(int(n)), nil
	case KindInt64:
		n, err := strconv.ParseInt(payload, 0, 64)
		if err != nil {
			return Value{}, malformed(kind, payload)
		}
		return Int64(n), nil
	case KindUint:
		n, err := strconv.ParseUint(payload, 0, 32)
		if err != nil {
			return Value{}, malformed(kind, payload)
		}
		return Uint(uint(n)), nil
	case KindUint64:
		n, err := strconv.ParseUint(payload, 0, 64)
		if err != nil {
			return Value{}, malformed(kind, payload)
		}
		return Uint64(n), nil
	case KindDouble:
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return Value{}, malformed(kind, payload)
		}
		return Double(f), nil
	case KindBoolean:
		b, ok := parseBool(payload)
		if !ok {
			return Value{}, malformed(kind, payload)
		}
		return Bool(b), nil
	case KindString:
		s, err := unquote(payload)
		if err != nil {
			return Value{}, malformed(kind, payload)
		}
		return String(s), nil
	case KindFraction:
		return parseFraction(payload)
	case KindFourcc:
		return parseFourcc(payload)
	case KindRange, KindList, KindArray:
		if containerOf(payload) != kind {
			return Value{}, malformed(kind, payload)
		}
		return parseContainer(payload, KindInvalid)
	}
	return Value{}, fmt.Errorf("%w: invalid kind", ErrMalformedValue)
}

func malformed(kind Kind, payload string) error {
	return fmt.Errorf("%w: %q is not a valid %s", ErrMalformedValue, payload, kind)
}

// containerOf returns the container kind opened by the first byte of s.
func containerOf(s string) Kind {
	if s == "" {
		return KindInvalid
	}
	for k, b := range brackets {
		if s[0] == b[0] {
			return k
		}
	}
	return KindInvalid
}

// parseContainer reads "[ a, b ]", "{ a, b }" or "< a, b >". Elements
// without their own tag are read as elem, or inferred when elem is
// KindInvalid.
func parseContainer(s string, elem Kind) (Value, error) {
	kind := containerOf(s)
	b := brackets[kind]
	if len(s) < 2 || s[len(s)-1] != b[1] {
		return Value{}, fmt.Errorf("%w: unterminated %s %q", ErrMalformedValue, kind, s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])

	v := Value{kind: kind}
	if inner != "" {
		for _, item := range Split(inner, ',') {
			item = strings.TrimSpace(item)
			if item == "" {
				return Value{}, fmt.Errorf("%w: empty element in %q", ErrMalformedValue, s)
			}
			var (
				e   Value
				err error
			)
			switch {
			case strings.HasPrefix(item, "("), elem == KindInvalid:
				e, err = Parse(item)
			case containerOf(item) != KindInvalid:
				e, err = parseContainer(item, elem)
			default:
				e, err = ParseAs(elem, item)
			}
			if err != nil {
				return Value{}, err
			}
			v.elems = append(v.elems, e)
		}
	}

	if kind == KindRange {
		if err := checkRange(v, s); err != nil {
			return Value{}, err
		}
	}
	return v, nil
}

// checkRange accepts [min, max] and [min, max, step] over one numeric kind.
func checkRange(v Value, s string) error {
	if len(v.elems) != 2 && len(v.elems) != 3 {
		return fmt.Errorf("%w: range %q needs two or three bounds", ErrMalformedValue, s)
	}
	switch v.elemKind() {
	case KindInt, KindInt64, KindDouble, KindFraction:
		return nil
	}
	return fmt.Errorf("%w: range %q must hold numbers of one type", ErrMalformedValue, s)
}

func parseFraction(payload string) (Value, error) {
	numText, denText, hasDen := strings.Cut(payload, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numText), 10, 32)
	if err != nil {
		return Value{}, malformed(KindFraction, payload)
	}
	den := int64(1)
	if hasDen {
		den, err = strconv.ParseInt(strings.TrimSpace(denText), 10, 32)
		if err != nil || den <= 0 {
			return Value{}, malformed(KindFraction, payload)
		}
	}
	return Fraction(int(num), int(den)), nil
}

// parseFourcc accepts four printable characters or their little-endian
// numeric form (0x30323449 is "I420").
func parseFourcc(payload string) (Value, error) {
	if strings.HasPrefix(payload, "0x") || strings.HasPrefix(payload, "0X") {
		n, err := strconv.ParseUint(payload[2:], 16, 32)
		if err != nil {
			return Value{}, malformed(KindFourcc, payload)
		}
		payload = string([]byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)})
	}
	if len(payload) != 4 {
		return Value{}, malformed(KindFourcc, payload)
	}
	for i := 0; i < len(payload); i++ {
		if payload[i] < 0x20 || payload[i] > 0x7e {
			return Value{}, malformed(KindFourcc, payload)
		}
	}
	return Fourcc(payload), nil
}

func infer(s string) Value {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return Int(int(n))
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64(n)
	}
	if strings.Contains(s, "/") {
		if v, err := parseFraction(s); err == nil {
			return v
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Double(f)
	}
	switch strings.ToLower(s) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if u, err := unquote(s); err == nil {
		return String(u)
	}
	return String(s)
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "t", "1":
		return true, true
	case "false", "no", "f", "0":
		return false, true
	}
	return false, false
}
