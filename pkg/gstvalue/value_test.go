package gstvalue

import (
	"errors"
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"gint64", "(gint64)1000000000", Int64(1000000000)},
		{"negative gint64", "(gint64)-5", Int64(-5)},
		{"int", "(int)0", Int(0)},
		{"gint alias", "(gint)42", Int(42)},
		{"guint64", "(guint64)18446744073709551615", Uint64(18446744073709551615)},
		{"guint", "(guint)7", Uint(7)},
		{"double", "(double)29.97", Double(29.97)},
		{"float alias", "(float)0.5", Double(0.5)},
		{"boolean", "(boolean)true", Bool(true)},
		{"boolean yes", "(boolean)no", Bool(false)},
		{"bare string", "(string)hello", String("hello")},
		{"quoted string", `(string)"My\ Clip"`, String("My Clip")},
		{"quoted with escaped quote", `(string)"say \"hi\""`, String(`say "hi"`)},
		{"whitespace around", "  (gint64) 12 ", Int64(12)},
		{"inferred int", "12", Int(12)},
		{"inferred int64", "5000000000", Int64(5000000000)},
		{"inferred double", "1.5", Double(1.5)},
		{"inferred bool", "TRUE", Bool(true)},
		{"inferred string", "audio", String("audio")},
		{"fraction", "(fraction)25/1", Fraction(25, 1)},
		{"ntsc fraction", "(fraction)30000/1001", Fraction(30000, 1001)},
		{"fraction without denominator", "(fraction)25", Fraction(25, 1)},
		{"inferred fraction", "16/9", Fraction(16, 9)},
		{"fourcc", "(fourcc)I420", Fourcc("I420")},
		{"GstFourcc alias", "(GstFourcc)YUY2", Fourcc("YUY2")},
		{"numeric fourcc", "(fourcc)0x30323449", Fourcc("I420")},
		{"int range", "(int)[ 1, 2147483647 ]", Range(Int(1), Int(2147483647))},
		{"fraction range", "(fraction)[ 0/1, 2147483647/1 ]", Range(Fraction(0, 1), Fraction(2147483647, 1))},
		{"fourcc list", "(fourcc){ I420, YV12 }", List(Fourcc("I420"), Fourcc("YV12"))},
		{"tagged elements", "{ (int)1, (string)two }", List(Int(1), String("two"))},
		{"untagged list", "{ 8, 16 }", List(Int(8), Int(16))},
		{"empty list", "{ }", List()},
		{"array", "(int)< 1, 2, 3 >", Array(Int(1), Int(2), Int(3))},
		{"list of ranges", "{ (int)[ 1, 2 ], (int)[ 4, 8 ] }", List(Range(Int(1), Int(2)), Range(Int(4), Int(8)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown tag", "(notatype)1"},
		{"zero denominator", "(fraction)1/0"},
		{"fraction text", "(fraction)fast"},
		{"short fourcc", "(fourcc)I42"},
		{"unterminated range", "(int)[ 1, 2"},
		{"one bound range", "(int)[ 1 ]"},
		{"string range", "(string)[ a, b ]"},
		{"mixed range", "[ (int)1, (double)2.5 ]"},
		{"empty list element", "(int){ 1, , 2 }"},
		{"bad list element", "(int){ 1, x }"},
		{"unterminated tag", "(gint64 12"},
		{"int64 payload", "(gint64)abc"},
		{"int overflow", "(int)5000000000"},
		{"negative unsigned", "(guint64)-1"},
		{"bad boolean", "(boolean)maybe"},
		{"unterminated string", `(string)"open`},
		{"escaped closing quote", `(string)"open\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, ErrMalformedValue) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedValue", tt.input, err)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Int64(1234567), "(gint64)1234567"},
		{Int(0), "(int)0"},
		{Uint64(3), "(guint64)3"},
		{Double(0.25), "(double)0.25"},
		{Bool(false), "(boolean)false"},
		{String("plain"), "(string)plain"},
		{String("two words"), `(string)"two words"`},
		{String(""), `(string)""`},
		{String("{x}"), `(string)"{x}"`},
		{Fraction(24000, 1001), "(fraction)24000/1001"},
		{Fourcc("I420"), "(fourcc)I420"},
		{Range(Int(1), Int(10)), "(int)[ 1, 10 ]"},
		{List(Fourcc("I420"), Fourcc("YV12")), "(fourcc){ I420, YV12 }"},
		{List(Int(1), String("a b")), `{ (int)1, (string)"a b" }`},
		{List(), "{ }"},
		{Array(Double(0.5)), "(double)< 0.5 >"},
		{Value{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringParsesBack(t *testing.T) {
	values := []Value{
		Int64(-9), Int(3), Uint(4), Uint64(5), Double(1e-3), Bool(true),
		String(`a "quoted", value; with = signs`), String(`back\slash`),
		Fraction(30000, 1001), Fourcc("YV12"),
		Range(Fraction(1, 1), Fraction(60, 1)),
		List(String("a, b"), String("c")),
		Array(List(Int(1), Int(2)), String("x")),
	}
	for _, v := range values {
		got, err := Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", v.String(), err)
		}
		if !got.Equal(v) {
			t.Errorf("Parse(%q) = %#v, want %#v", v.String(), got, v)
		}
	}
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		want   int64
		wantOK bool
	}{
		{"int", Int(-3), -3, true},
		{"int64", Int64(1 << 40), 1 << 40, true},
		{"uint", Uint(9), 9, true},
		{"uint64 fits", Uint64(1 << 62), 1 << 62, true},
		{"uint64 overflow", Uint64(1 << 63), 0, false},
		{"double", Double(1), 0, false},
		{"string", String("1"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.AsInt64()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("AsInt64() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAsFraction(t *testing.T) {
	num, den, ok := Fraction(30000, 1001).AsFraction()
	if !ok || num != 30000 || den != 1001 {
		t.Errorf("AsFraction() = (%d, %d, %v)", num, den, ok)
	}
	if f, ok := Fraction(1, 4).AsFloat64(); !ok || f != 0.25 {
		t.Errorf("AsFloat64() = (%v, %v)", f, ok)
	}
	if _, _, ok := Int(1).AsFraction(); ok {
		t.Error("AsFraction() on an int should report false")
	}
}

func TestElements(t *testing.T) {
	v := List(Fourcc("I420"), Fourcc("YV12"))
	elems := v.Elements()
	if len(elems) != 2 {
		t.Fatalf("got %d elements, want 2", len(elems))
	}
	if code, ok := elems[1].AsFourcc(); !ok || code != "YV12" {
		t.Errorf("elems[1] = %v", elems[1])
	}
	elems[0] = Int(0)
	if !v.Elements()[0].Equal(Fourcc("I420")) {
		t.Error("Elements() should return a copy")
	}
	if len(Int(1).Elements()) != 0 {
		t.Error("scalar values have no elements")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a, b, c", []string{"a", " b", " c"}},
		{`a, "b, c"`, []string{"a", ` "b, c"`}},
		{`a\, b`, []string{`a\, b`}},
		{"r=[ 1, 2 ], f={ x, y }, a=< 1, 2 >", []string{"r=[ 1, 2 ]", " f={ x, y }", " a=< 1, 2 >"}},
		{"{ [ 1, 2 ], 3 }, 4", []string{"{ [ 1, 2 ], 3 }", " 4"}},
		{"", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Split(tt.input, ',')
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Split(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	if got := Unescape(`My\ Clip\,\ take\ 2`); got != "My Clip, take 2" {
		t.Errorf("Unescape() = %q", got)
	}
	if got := Unescape(Escape(`a\b"c`)); got != `a\b"c` {
		t.Errorf("Unescape(Escape()) = %q", got)
	}
}

func ExampleParse() {
	v, err := Parse("(gint64)1000000000")
	if err != nil {
		panic(err)
	}
	ns, _ := v.AsInt64()
	fmt.Println(v.Kind(), ns)
	fmt.Println(Int(0))

	// Output:
	// gint64 1000000000
	// (int)0
}
