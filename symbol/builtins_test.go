package symbol

import (
	"errors"
	"testing"

	"github.com/ardnew/px/value"
)

// call invokes the named builtin and returns its formatted result.
func call(t *testing.T, syms map[string]any, name string, args ...any) (string, error) {
	t.Helper()

	fn, ok := syms[name]
	if !ok {
		t.Fatalf("symbol %q not defined", name)
	}

	v, err := value.Call(fn, args...)
	if err != nil {
		return "", err
	}

	return value.Repr(v), nil
}

func TestBuiltins(t *testing.T) {
	syms := Builtins()

	tests := []struct {
		name string
		fn   string
		args []any
		want string
	}{
		{"int_string", "int", []any{"2"}, "2"},
		{"int_float", "int", []any{7.9}, "7"},
		{"int_base", "int", []any{"ff", 16}, "255"},
		{"int_base_prefix", "int", []any{"0x1f", 0}, "31"},
		{"int_empty", "int", nil, "0"},
		{"float", "float", []any{"2.5"}, "2.5"},
		{"float_int", "float", []any{3}, "3.0"},
		{"str", "str", []any{[]any{1, "a"}}, `"[1, 'a']"`},
		{"bool", "bool", []any{""}, "False"},
		{"len_string", "len", []any{"héllo"}, "5"},
		{"len_list", "len", []any{[]any{1, 2}}, "2"},
		{"len_map", "len", []any{map[string]any{"a": 1}}, "1"},
		{"range", "range", []any{5}, "[0, 1, 2, 3, 4]"},
		{"range_start", "range", []any{2, 5}, "[2, 3, 4]"},
		{"range_step", "range", []any{10, 0, -3}, "[10, 7, 4, 1]"},
		{"range_empty", "range", []any{0}, "[]"},
		{"sum", "sum", []any{[]any{0, 1, 2, 3, 4}}, "10"},
		{"sum_float", "sum", []any{[]any{1, 0.5}}, "1.5"},
		{"sum_start", "sum", []any{[]any{1}, 10}, "11"},
		{"sorted", "sorted", []any{[]any{5, 7, 3, 4}}, "[3, 4, 5, 7]"},
		{"sorted_string", "sorted", []any{"cab"}, "['a', 'b', 'c']"},
		{"reversed", "reversed", []any{[]any{1, 2, 3}}, "[3, 2, 1]"},
		{"min_list", "min", []any{[]any{4, 2, 8}}, "2"},
		{"min_args", "min", []any{4, 2.5, 8}, "2.5"},
		{"max_args", "max", []any{"a", "c", "b"}, "'c'"},
		{"abs_int", "abs", []any{-3}, "3"},
		{"abs_float", "abs", []any{-2.5}, "2.5"},
		{"round_even", "round", []any{2.5}, "2"},
		{"round_odd", "round", []any{3.5}, "4"},
		{"round_digits", "round", []any{3.14159, 2}, "3.14"},
		{"list_string", "list", []any{"ab"}, "['a', 'b']"},
		{"list_empty", "list", nil, "[]"},
		{"dict_pairs", "dict", []any{[]any{[]any{"a", 1}, []any{"b", 2}}}, "{'a': 1, 'b': 2}"},
		{"dict_empty", "dict", nil, "{}"},
		{"set", "set", []any{[]any{3, 1, 3, 2, 1}}, "[3, 1, 2]"},
		{"enumerate", "enumerate", []any{"ab", 1}, "[[1, 'a'], [2, 'b']]"},
		{"zip", "zip", []any{[]any{1, 2, 3}, "ab"}, "[[1, 'a'], [2, 'b']]"},
		{"repr", "repr", []any{"a"}, `"'a'"`},
		{"type", "type", []any{1.5}, "'float'"},
		{"chr", "chr", []any{65}, "'A'"},
		{"ord", "ord", []any{"a"}, "97"},
		{"hex", "hex", []any{255}, "'0xff'"},
		{"hex_negative", "hex", []any{-255}, "'-0xff'"},
		{"oct", "oct", []any{8}, "'0o10'"},
		{"bin", "bin", []any{5}, "'0b101'"},
		{"divmod", "divmod", []any{7, 2}, "[3, 1]"},
		{"divmod_negative", "divmod", []any{-7, 2}, "[-4, 1]"},
		{"divmod_float", "divmod", []any{7.5, 2}, "[3.0, 1.5]"},
		{"pow_int", "pow", []any{2, 10}, "1024"},
		{"pow_mod", "pow", []any{3, 4, 5}, "1"},
		{"pow_negative_exp", "pow", []any{2, -1}, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, syms, tt.fn, tt.args...)
			if err != nil {
				t.Fatalf("%s(%v): %v", tt.fn, tt.args, err)
			}

			if got != tt.want {
				t.Errorf("%s(%v) = %s, want %s", tt.fn, tt.args, got, tt.want)
			}
		})
	}
}

func TestBuiltins_Errors(t *testing.T) {
	syms := Builtins()

	tests := []struct {
		name string
		fn   string
		args []any
		want error
	}{
		{"int_garbage", "int", []any{"abc"}, value.ErrConvert},
		{"int_arity", "int", []any{1, 2, 3}, value.ErrArgument},
		{"len_int", "len", []any{5}, value.ErrArgument},
		{"range_float", "range", []any{1.5}, value.ErrArgument},
		{"range_zero_step", "range", []any{0, 5, 0}, value.ErrArgument},
		{"sum_strings", "sum", []any{[]any{"a"}}, value.ErrOperand},
		{"sorted_mixed", "sorted", []any{[]any{1, "a"}}, value.ErrUnorderable},
		{"sorted_int", "sorted", []any{5}, value.ErrNotIterable},
		{"sort_string", "sort", []any{"abc"}, value.ErrArgument},
		{"min_empty", "min", []any{[]any{}}, value.ErrArgument},
		{"ord_long", "ord", []any{"ab"}, value.ErrArgument},
		{"divmod_zero", "divmod", []any{1, 0}, value.ErrDivisionByZero},
		{"dict_bad_pair", "dict", []any{[]any{[]any{1}}}, value.ErrArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, syms, tt.fn, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("%s(%v) error = %v, want %v", tt.fn, tt.args, err, tt.want)
			}
		})
	}
}

func TestSort_InPlace(t *testing.T) {
	list := []any{5, 7, 3, 4}

	v, err := value.Call(Builtins()["sort"], list)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}

	if v != nil {
		t.Errorf("sort returned %v, want nil", v)
	}

	if got := value.Format(list); got != "[3, 4, 5, 7]" {
		t.Errorf("list after sort = %s", got)
	}
}

func TestBuiltins_IsolatedCopies(t *testing.T) {
	a := Builtins()
	delete(a, "int")

	if _, ok := Builtins()["int"]; !ok {
		t.Error("Builtins() returned a shared map")
	}
}
