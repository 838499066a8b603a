package value

import (
	"errors"
	"iter"
	"math"
	"slices"
	"strconv"
	"testing"

	"github.com/ardnew/px/pkg"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "None"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int", 10, "10"},
		{"int64", int64(-3), "-3"},
		{"uint8", uint8(7), "7"},
		{"float_integral", 4.0, "4.0"},
		{"float_fraction", 0.25, "0.25"},
		{"float_large", 1e20, "1e+20"},
		{"float_small", 0.00001, "1e-05"},
		{"float_inf", math.Inf(1), "inf"},
		{"string", "foo bar", "foo bar"},
		{"list_ints", []any{3, 4, 5, 7}, "[3, 4, 5, 7]"},
		{"list_empty", []any{}, "[]"},
		{"list_strings", []any{"a", "it's"}, `['a', "it's"]`},
		{"list_nested", []any{[]any{1, nil}, true}, "[[1, None], True]"},
		{"typed_slice", []string{"x"}, "['x']"},
		{"map_sorted", map[string]any{"b": 2, "a": 1.5}, "{'a': 1.5, 'b': 2}"},
		{"error", errors.New("boom"), "boom"},
		{"func", Func(func(...any) (any, error) { return nil, nil }), "<function>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%#v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepr_QuotesStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{`say "hi"`, `'say "hi"'`},
		{"it's", `"it's"`},
		{`both ' and "`, `'both \' and "'`},
		{"tab\t", `'tab\t'`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Repr(tt.in); got != tt.want {
				t.Errorf("Repr(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{"2", 2, false},
		{" 42\n", 42, false},
		{"-7", -7, false},
		{3.9, 3, false},
		{-3.9, -3, false},
		{true, 1, false},
		{uint16(9), 9, false},
		{"abc", 0, true},
		{"1.5", 0, true},
		{nil, 0, true},
		{[]any{}, 0, true},
		{math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(Repr(tt.in), func(t *testing.T) {
			got, err := ToInt(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToInt(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if err != nil {
				if !errors.Is(err, ErrConvert) {
					t.Errorf("expected ErrConvert, got %v", err)
				}

				return
			}

			if got != tt.want {
				t.Errorf("ToInt(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in      any
		want    float64
		wantErr bool
	}{
		{"2.5", 2.5, false},
		{"3", 3, false},
		{7, 7, false},
		{int64(8), 8, false},
		{false, 0, false},
		{"x", 0, true},
		{nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(Repr(tt.in), func(t *testing.T) {
			got, err := ToFloat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToFloat(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if err == nil && got != tt.want {
				t.Errorf("ToFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{false, false},
		{0, false},
		{0.0, false},
		{"", false},
		{[]any{}, false},
		{map[string]any{}, false},
		{true, true},
		{-1, true},
		{"0", true},
		{[]any{nil}, true},
		{uint(3), true},
	}

	for _, tt := range tests {
		if got := Truthy(tt.in); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		a, b    any
		want    int
		wantErr bool
	}{
		{"ints", 3, 5, -1, false},
		{"int_float", 2, 1.5, 1, false},
		{"int64_int", int64(4), 4, 0, false},
		{"signed_unsigned", -1, uint(1), -1, false},
		{"strings", "b", "a", 1, false},
		{"bools", false, true, -1, false},
		{"lists", []any{1, 2}, []any{1, 3}, -1, false},
		{"list_prefix", []any{1}, []any{1, 0}, -1, false},
		{"mixed", "a", 1, 0, true},
		{"nil", nil, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compare error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				if !errors.Is(err, ErrUnorderable) {
					t.Errorf("expected ErrUnorderable, got %v", err)
				}

				return
			}

			if got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if !Equal(2, 2.0) || Equal(2, "2") || !Equal([]any{"a"}, []any{"a"}) {
		t.Error("Equal returned unexpected results")
	}
}

func TestIterate(t *testing.T) {
	var seq iter.Seq[any] = slices.Values([]any{1, 2})

	tests := []struct {
		name    string
		in      any
		want    []any
		wantErr bool
	}{
		{"list", []any{1, "a"}, []any{1, "a"}, false},
		{"typed_slice", []int{4, 5}, []any{4, 5}, false},
		{"array", [2]string{"p", "q"}, []any{"p", "q"}, false},
		{"string", "héy", []any{"h", "é", "y"}, false},
		{"map_keys_sorted", map[string]any{"b": 1, "a": 2}, []any{"a", "b"}, false},
		{"seq", seq, []any{1, 2}, false},
		{"empty", []any{}, []any{}, false},
		{"int", 5, nil, true},
		{"nil", nil, nil, true},
		{"bool", true, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := List(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("List(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if err != nil {
				if !errors.Is(err, ErrNotIterable) {
					t.Errorf("expected ErrNotIterable, got %v", err)
				}

				return
			}

			if len(got) == 0 && len(tt.want) == 0 {
				return
			}

			if !slices.EqualFunc(got, tt.want, Equal) {
				t.Errorf("List(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrorDetail(t *testing.T) {
	_, iterErr := Iterate(5)
	_, nilErr := Iterate(nil)
	_, callErr := Call("f")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not iterable", iterErr, "'int' object is not iterable"},
		{"none not iterable", nilErr, "'NoneType' object is not iterable"},
		{"not callable", callErr, "'str' object is not callable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *pkg.Error
			if !errors.As(tt.err, &e) {
				t.Fatalf("error %v is not a *pkg.Error", tt.err)
			}

			if got := e.Detail(); got != tt.want {
				t.Errorf("Detail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDivMod(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(a, b any) (any, error)
		a, b    any
		want    any
		wantErr error
	}{
		{"div_ints", Div, 1, 4, 0.25, nil},
		{"div_exact", Div, 8, 2, 4.0, nil},
		{"div_float", Div, 1, 0.25, 4.0, nil},
		{"div_zero", Div, 5, 0, nil, ErrDivisionByZero},
		{"div_zero_float", Div, 5, 0.0, nil, ErrDivisionByZero},
		{"div_string", Div, "a", 2, nil, ErrOperand},
		{"mod_ints", Mod, 7, 3, 1, nil},
		{"mod_negative", Mod, -7, 3, 2, nil},
		{"mod_negative_divisor", Mod, 7, -3, -2, nil},
		{"mod_float", Mod, 5.5, 2, 1.5, nil},
		{"mod_zero", Mod, 5, 0, nil, ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}

	if _, err := Div(1, 0); err == nil || err.Error() != "division by zero" {
		t.Errorf("Div(1, 0) error = %v, want division by zero", err)
	}
}

func TestCall(t *testing.T) {
	double := Func(func(args ...any) (any, error) {
		n, err := ToInt(args[0])

		return n * 2, err
	})

	tests := []struct {
		name    string
		fn      any
		args    []any
		want    any
		wantErr bool
	}{
		{"func", double, []any{"21"}, 42, false},
		{"reflect_typed", strconv.Itoa, []any{7}, "7", false},
		{"reflect_convert", func(f float64) float64 { return f / 2 }, []any{3}, 1.5, false},
		{"reflect_error", strconv.Atoi, []any{"x"}, nil, true},
		{"reflect_value_error", strconv.Atoi, []any{"12"}, 12, false},
		{"reflect_no_result", func(string) {}, []any{"a"}, nil, false},
		{"reflect_variadic", func(xs ...int) int { return len(xs) }, []any{1, 2, 3}, 3, false},
		{"reflect_nil_arg", func(v []any) int { return len(v) }, []any{nil}, 0, false},
		{"arity", strconv.Itoa, []any{}, nil, true},
		{"bad_type", strconv.Itoa, []any{"s"}, nil, true},
		{"not_callable", 5, nil, nil, true},
		{"panic", func() int { panic("oops") }, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Call(tt.fn, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Call error = %v, wantErr %v", err, tt.wantErr)
			}

			if err == nil && got != tt.want {
				t.Errorf("Call = %#v, want %#v", got, tt.want)
			}
		})
	}

	if !Callable(double) || !Callable(strconv.Itoa) || Callable(nil) || Callable("f") {
		t.Error("Callable returned unexpected results")
	}
}

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"n": int64(3),
		"u": uint64(4),
		"l": []any{map[string]any{"f": 1.5}},
	}

	got := Normalize(in)

	if Format(got) != "{'l': [{'f': 1.5}], 'n': 3, 'u': 4}" {
		t.Errorf("Normalize = %s", Format(got))
	}

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Normalize returned %T", got)
	}

	if _, ok := m["n"].(int); !ok {
		t.Errorf("n is %T, want int", m["n"])
	}
}
