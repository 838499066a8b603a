package symbol

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/px/value"
)

const (
	asciiLowercase = "abcdefghijklmnopqrstuvwxyz"
	asciiUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits         = "0123456789"
	punctuation    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	whitespace     = " \t\n\r\v\f"
)

// Strings returns character-class constants and word capitalization.
func Strings() Library {
	return Library{
		Name: "strings",
		Symbols: map[string]any{
			"ascii_letters":   asciiLowercase + asciiUppercase,
			"ascii_lowercase": asciiLowercase,
			"ascii_uppercase": asciiUppercase,
			"digits":          digits,
			"hexdigits":       digits + "abcdefABCDEF",
			"octdigits":       "01234567",
			"punctuation":     punctuation,
			"whitespace":      whitespace,
			"printable":       digits + asciiLowercase + asciiUppercase + punctuation + whitespace,
			"capwords":        value.Func(capwords),
		},
	}
}

// capwords capitalizes each word of s, splitting on runs of whitespace or on
// the optional separator.
func capwords(args ...any) (any, error) {
	if err := arity("capwords", args, 1, 2); err != nil {
		return nil, err
	}

	s, err := textOf("capwords", args[0])
	if err != nil {
		return nil, err
	}

	var (
		words []string
		sep   = " "
	)

	if len(args) == 2 && args[1] != nil {
		if sep, err = textOf("capwords", args[1]); err != nil {
			return nil, err
		}

		words = strings.Split(s, sep)
	} else {
		words = strings.Fields(s)
	}

	for i, w := range words {
		words[i] = capitalize(w)
	}

	return strings.Join(words, sep), nil
}

func capitalize(w string) string {
	r, n := utf8.DecodeRuneInString(w)
	if n == 0 {
		return w
	}

	return string(unicode.ToUpper(r)) + strings.ToLower(w[n:])
}
