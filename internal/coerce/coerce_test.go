package coerce

import "testing"

// ----------------------------------------------------------------------------
// Coerce Tests
// ----------------------------------------------------------------------------

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		// Null handling
		{name: "nil", input: nil, want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "whitespace only", input: "   ", want: nil},

		// Booleans before integers
		{name: "true lowercase", input: "true", want: true},
		{name: "false lowercase", input: "false", want: false},
		{name: "TRUE uppercase", input: "TRUE", want: true},
		{name: "mixed case False", input: "False", want: false},

		// Integers
		{name: "positive integer", input: "42", want: int64(42)},
		{name: "negative integer", input: "-7", want: int64(-7)},
		{name: "zero", input: "0", want: int64(0)},
		{name: "leading zeros stay integer", input: "01", want: int64(1)},

		// Floats: exactly one dot, otherwise numeric
		{name: "decimal", input: "42.5", want: float64(42.5)},
		{name: "negative decimal", input: "-0.25", want: float64(-0.25)},
		{name: "whole float stays float", input: "5.0", want: float64(5.0)},
		{name: "two dots is a string", input: "1.2.3", want: "1.2.3"},

		// Strings
		{name: "plain string", input: "abc", want: "abc"},
		{name: "string is trimmed", input: "  abc  ", want: "abc"},
		{name: "numeric-ish string", input: "42abc", want: "42abc"},
		{name: "version string", input: "1.0.0", want: "1.0.0"},

		// Native types bypass sniffing
		{name: "native bool", input: true, want: true},
		{name: "native int", input: 7, want: int64(7)},
		{name: "native whole float collapses", input: float64(5), want: int64(5)},
		{name: "native fractional float", input: 2.5, want: float64(2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(tt.input)
			if got != tt.want {
				t.Errorf("Coerce(%#v) = %#v (%T), want %#v (%T)", tt.input, got, got, tt.want, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Bool Tests
// ----------------------------------------------------------------------------

func TestBool(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "true", input: "true", want: true},
		{name: "yes", input: "yes", want: true},
		{name: "one", input: "1", want: true},
		{name: "on", input: "on", want: true},
		{name: "uppercase YES", input: "YES", want: true},
		{name: "false", input: "false", want: false},
		{name: "no", input: "no", want: false},
		{name: "zero", input: "0", want: false},
		{name: "garbage defaults false", input: "maybe", want: false},
		{name: "empty defaults false", input: "", want: false},
		{name: "native bool", input: true, want: true},
		{name: "native int nonzero", input: 2, want: true},
		{name: "nil", input: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bool(tt.input); got != tt.want {
				t.Errorf("Bool(%#v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Int Tests
// ----------------------------------------------------------------------------

func TestInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{name: "integer string", input: "3", want: 3},
		{name: "float string truncates", input: "3.9", want: 3},
		{name: "negative", input: "-1", want: -1},
		{name: "empty is sentinel", input: "", want: -1},
		{name: "nil is sentinel", input: nil, want: -1},
		{name: "garbage is sentinel", input: "abc", want: -1},
		{name: "native int", input: 5, want: 5},
		{name: "native float", input: float64(7.2), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Int(tt.input); got != tt.want {
				t.Errorf("Int(%#v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Number Tests
// ----------------------------------------------------------------------------

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "integer string", input: "10", want: int64(10)},
		{name: "decimal string", input: "10.5", want: float64(10.5)},
		{name: "whole float collapses", input: "10.0", want: int64(10)},
		{name: "native whole float collapses", input: float64(4), want: int64(4)},
		{name: "empty is nil", input: "", want: nil},
		{name: "garbage is nil", input: "abc", want: nil},
		{name: "nil is nil", input: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.input)
			if got != tt.want {
				t.Errorf("Number(%#v) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// SplitList / JoinList Tests
// ----------------------------------------------------------------------------

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "simple", input: "a, b, c", want: []string{"a", "b", "c"}},
		{name: "no spaces", input: "a,b", want: []string{"a", "b"}},
		{name: "drops empty segments", input: "a,,b,", want: []string{"a", "b"}},
		{name: "empty input", input: "", want: nil},
		{name: "only commas", input: ",,", want: nil},
		{name: "trims elements", input: "  x  ,  y  ", want: []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitList(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestJoinListRoundTrip(t *testing.T) {
	items := []string{"pii", "finance", "gold"}
	joined := JoinList(items)
	got := SplitList(joined)
	if len(got) != len(items) {
		t.Fatalf("round trip lost elements: %v", got)
	}
	for i := range items {
		if got[i] != items[i] {
			t.Errorf("round trip[%d] = %q, want %q", i, got[i], items[i])
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "hello"},
		{name: "whitespace", input: "  hello  ", want: "hello"},
		{name: "text escape", input: `="12345"`, want: "12345"},
		{name: "bare formula kept", input: "=price*qty", want: "=price*qty"},
		{name: "quotes kept", input: `"quoted"`, want: `"quoted"`},
		{name: "single quotes kept", input: "'quoted'", want: "'quoted'"},
		{name: "bare equals kept", input: "=", want: "="},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
