// Package caps parses and prints media capability strings.
//
// A capability string describes what a stream carries. It is either one of
// the special values ANY and EMPTY, or a list of structures separated by
// semicolons. Each structure is a media type followed by typed fields:
//
//	audio/x-raw-int, rate=(int)44100, channels=(int)2; audio/x-raw-float
//	video/x-raw-yuv, format=(fourcc)I420, framerate=(fraction)25/1
//
// Field values use the notation of package gstvalue, including ranges such
// as (int)[ 1, 2147483647 ] and lists such as (fourcc){ I420, YV12 }.
// Untyped values are inferred.
package caps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/xptv/pkg/gstvalue"
)

// ErrMalformed is returned by [Parse] for text that is not a valid
// capability string.
var ErrMalformed = errors.New("malformed caps")

const (
	anyCaps   = "ANY"
	emptyCaps = "EMPTY"
)

// Field is one name=value pair of a structure.
type Field struct {
	Name  string
	Value gstvalue.Value
}

// Structure is a media type with ordered fields.
type Structure struct {
	Name   string
	Fields []Field
}

// Get returns the value of the named field.
func (s Structure) Get(name string) (gstvalue.Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return gstvalue.Value{}, false
}

// String renders the structure in canonical form.
func (s Structure) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, f := range s.Fields {
		b.WriteString(", ")
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(f.Value.String())
	}
	return b.String()
}

// Caps is a parsed capability string. The zero value is EMPTY.
type Caps struct {
	any        bool
	structures []Structure
}

// Any returns caps that match everything.
func Any() Caps { return Caps{any: true} }

// New returns caps holding the given structures.
func New(structures ...Structure) Caps {
	return Caps{structures: structures}
}

// Simple returns caps with a single structure without fields.
func Simple(mediaType string) Caps {
	return New(Structure{Name: mediaType})
}

// IsAny reports whether c is ANY.
func (c Caps) IsAny() bool { return c.any }

// IsEmpty reports whether c is EMPTY.
func (c Caps) IsEmpty() bool { return !c.any && len(c.structures) == 0 }

// Structures returns the parsed structures in order.
func (c Caps) Structures() []Structure { return c.structures }

// MediaType returns the media type of the first structure, or "" for ANY
// and EMPTY.
func (c Caps) MediaType() string {
	if len(c.structures) == 0 {
		return ""
	}
	return c.structures[0].Name
}

// String renders c in canonical form. Parse(c.String()) yields caps equal
// to c.
func (c Caps) String() string {
	if c.any {
		return anyCaps
	}
	if len(c.structures) == 0 {
		return emptyCaps
	}
	parts := make([]string, len(c.structures))
	for i, s := range c.structures {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

// Equal reports whether c and o describe the same structures in the same
// order.
func (c Caps) Equal(o Caps) bool {
	return c.String() == o.String()
}

// Parse reads a capability string.
func Parse(s string) (Caps, error) {
	s = strings.TrimSpace(s)
	switch s {
	case anyCaps:
		return Any(), nil
	case emptyCaps, "NONE":
		return Caps{}, nil
	case "":
		return Caps{}, fmt.Errorf("%w: empty string", ErrMalformed)
	}

	var structures []Structure
	for _, raw := range gstvalue.Split(s, ';') {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		st, err := parseStructure(raw)
		if err != nil {
			return Caps{}, err
		}
		structures = append(structures, st)
	}
	if len(structures) == 0 {
		return Caps{}, fmt.Errorf("%w: no structures in %q", ErrMalformed, s)
	}
	return New(structures...), nil
}

// MustParse is like [Parse] but panics on error. Intended for literals.
func MustParse(s string) Caps {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseStructure(raw string) (Structure, error) {
	parts := gstvalue.Split(raw, ',')
	name := strings.TrimSpace(parts[0])
	if !validName(name) {
		return Structure{}, fmt.Errorf("%w: invalid media type %q", ErrMalformed, name)
	}

	st := Structure{Name: name}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key, val, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || !validName(key) {
			return Structure{}, fmt.Errorf("%w: invalid field %q in %q", ErrMalformed, p, name)
		}
		v, err := gstvalue.Parse(val)
		if err != nil {
			return Structure{}, fmt.Errorf("%w: field %s: %v", ErrMalformed, key, err)
		}
		st.Fields = append(st.Fields, Field{Name: key, Value: v})
	}
	return st, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_/+.:", r):
		default:
			return false
		}
	}
	return true
}
