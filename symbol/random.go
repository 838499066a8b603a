package symbol

import (
	"math/rand/v2"

	"github.com/ardnew/px/value"
)

// Random returns pseudo-random number functions drawing from rng.
func Random(rng *rand.Rand) Library {
	r := randomSource{rng}

	return Library{
		Name: "random",
		Symbols: map[string]any{
			"random":  value.Func(r.random),
			"randint": value.Func(r.randint),
			"uniform": value.Func(r.uniform),
			"choice":  value.Func(r.choice),
			"shuffle": value.Func(r.shuffle),
			"sample":  value.Func(r.sample),
		},
	}
}

type randomSource struct{ *rand.Rand }

func (r randomSource) random(args ...any) (any, error) {
	if err := arity("random", args, 0, 0); err != nil {
		return nil, err
	}

	return r.Float64(), nil
}

// randint returns an integer in the closed interval [a, b].
func (r randomSource) randint(args ...any) (any, error) {
	if err := arity("randint", args, 2, 2); err != nil {
		return nil, err
	}

	n, err := ints("randint", args)
	if err != nil {
		return nil, err
	}

	if n[1] < n[0] {
		return nil, value.ErrArgument.Wrapf("randint() empty range (%d, %d)", n[0], n[1])
	}

	return n[0] + r.IntN(n[1]-n[0]+1), nil
}

func (r randomSource) uniform(args ...any) (any, error) {
	x, err := floats("uniform", args, 2)
	if err != nil {
		return nil, err
	}

	return x[0] + (x[1]-x[0])*r.Float64(), nil
}

func (r randomSource) choice(args ...any) (any, error) {
	if err := arity("choice", args, 1, 1); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	if len(elems) == 0 {
		return nil, value.ErrArgument.Wrapf("choice() cannot choose from an empty sequence")
	}

	return elems[r.IntN(len(elems))], nil
}

// shuffle reorders a list in place and returns nothing.
func (r randomSource) shuffle(args ...any) (any, error) {
	if err := arity("shuffle", args, 1, 1); err != nil {
		return nil, err
	}

	list, ok := args[0].([]any)
	if !ok {
		return nil, value.ErrArgument.Wrapf(
			"shuffle() requires a list, not '%s'", value.TypeName(args[0]))
	}

	r.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })

	return nil, nil
}

func (r randomSource) sample(args ...any) (any, error) {
	if err := arity("sample", args, 2, 2); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	k, err := countArg("sample", args[1])
	if err != nil {
		return nil, err
	}

	if k > len(elems) {
		return nil, value.ErrArgument.Wrapf("sample() larger than population")
	}

	out := make([]any, k)
	for i, j := range r.Perm(len(elems))[:k] {
		out[i] = elems[j]
	}

	return out, nil
}
