package module

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/ardnew/px/value"
)

func jsonModule() map[string]any {
	decode := unaryText("json.decode", jsonDecode)
	encode := value.Func(jsonEncode)

	return map[string]any{
		"decode": decode,
		"loads":  decode,
		"encode": encode,
		"dumps":  encode,
		"indent": value.Func(jsonIndent),
		"valid":  unaryText("json.valid", func(s string) (any, error) { return json.Valid([]byte(s)), nil }),
	}
}

// jsonDecode decodes a JSON document, keeping integral numbers as ints.
func jsonDecode(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	return value.Normalize(doc), nil
}

func jsonEncode(args ...any) (any, error) {
	if err := arity("json.encode", args, 1, 1); err != nil {
		return nil, err
	}

	out, err := json.Marshal(value.Normalize(args[0]))
	if err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	return string(out), nil
}

func jsonIndent(args ...any) (any, error) {
	if err := arity("json.indent", args, 1, 2); err != nil {
		return nil, err
	}

	width := 2
	if len(args) == 2 {
		var err error
		if width, err = value.ToInt(args[1]); err != nil {
			return nil, err
		}
	}

	out, err := json.MarshalIndent(value.Normalize(args[0]), "", strings.Repeat(" ", max(width, 0)))
	if err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	return string(out), nil
}

func yamlModule() map[string]any {
	decode := unaryText("yaml.decode", func(s string) (any, error) {
		var doc any
		if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
			return nil, value.ErrConvert.Wrap(err)
		}

		return value.Normalize(doc), nil
	})

	encode := value.Func(func(args ...any) (any, error) {
		if err := arity("yaml.encode", args, 1, 1); err != nil {
			return nil, err
		}

		out, err := yaml.Marshal(value.Normalize(args[0]))
		if err != nil {
			return nil, value.ErrConvert.Wrap(err)
		}

		return strings.TrimSuffix(string(out), "\n"), nil
	})

	return map[string]any{
		"decode": decode,
		"load":   decode,
		"encode": encode,
		"dump":   encode,
	}
}

func tomlModule() map[string]any {
	decode := unaryText("toml.decode", func(s string) (any, error) {
		doc := map[string]any{}
		if err := toml.Unmarshal([]byte(s), &doc); err != nil {
			return nil, value.ErrConvert.Wrap(err)
		}

		return value.Normalize(doc), nil
	})

	encode := value.Func(func(args ...any) (any, error) {
		if err := arity("toml.encode", args, 1, 1); err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(value.Normalize(args[0])); err != nil {
			return nil, value.ErrConvert.Wrap(err)
		}

		return strings.TrimSuffix(buf.String(), "\n"), nil
	})

	return map[string]any{
		"decode": decode,
		"loads":  decode,
		"encode": encode,
		"dumps":  encode,
	}
}

func dotenvModule() map[string]any {
	parse := unaryText("dotenv.parse", func(s string) (any, error) {
		env, err := godotenv.Unmarshal(s)
		if err != nil {
			return nil, value.ErrConvert.Wrap(err)
		}

		out := make(map[string]any, len(env))
		for k, v := range env {
			out[k] = v
		}

		return out, nil
	})

	marshal := value.Func(func(args ...any) (any, error) {
		if err := arity("dotenv.marshal", args, 1, 1); err != nil {
			return nil, err
		}

		m, ok := value.Normalize(args[0]).(map[string]any)
		if !ok {
			return nil, value.ErrArgument.Wrapf(
				"dotenv.marshal() expected a mapping, got '%s'", value.TypeName(args[0]))
		}

		env := make(map[string]string, len(m))
		for k, v := range m {
			env[k] = value.Format(v)
		}

		out, err := godotenv.Marshal(env)
		if err != nil {
			return nil, value.ErrConvert.Wrap(err)
		}

		return out, nil
	})

	return map[string]any{
		"parse":   parse,
		"decode":  parse,
		"marshal": marshal,
		"encode":  marshal,
	}
}

func base64Module() map[string]any {
	codec := func(name string, enc *base64.Encoding) (value.Func, value.Func) {
		encode := unaryText(name+"encode", func(s string) (any, error) {
			return enc.EncodeToString([]byte(s)), nil
		})

		decode := unaryText(name+"decode", func(s string) (any, error) {
			b, err := enc.DecodeString(strings.TrimSpace(s))
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return string(b), nil
		})

		return encode, decode
	}

	stdEnc, stdDec := codec("base64.", base64.StdEncoding)
	urlEnc, urlDec := codec("base64.url", base64.URLEncoding)
	rawEnc, rawDec := codec("base64.raw", base64.RawStdEncoding)

	return map[string]any{
		"encode":    stdEnc,
		"decode":    stdDec,
		"urlencode": urlEnc,
		"urldecode": urlDec,
		"rawencode": rawEnc,
		"rawdecode": rawDec,
	}
}

func hexModule() map[string]any {
	return map[string]any{
		"encode": unaryText("hex.encode", func(s string) (any, error) {
			return hex.EncodeToString([]byte(s)), nil
		}),
		"decode": unaryText("hex.decode", func(s string) (any, error) {
			b, err := hex.DecodeString(strings.TrimSpace(s))
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return string(b), nil
		}),
	}
}

func csvModule() map[string]any {
	return map[string]any{
		"row":    value.Func(csvRow),
		"decode": value.Func(csvDecode),
		"encode": value.Func(csvEncode),
	}
}

// csvReader returns a reader over s using the optional delimiter argument.
func csvReader(fn string, args []any) (*csv.Reader, error) {
	if err := arity(fn, args, 1, 2); err != nil {
		return nil, err
	}

	s, err := text(fn, args[0])
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1

	if len(args) == 2 {
		d, err := text(fn, args[1])
		if err != nil {
			return nil, err
		}

		if runes := []rune(d); len(runes) == 1 {
			r.Comma = runes[0]
		} else {
			return nil, value.ErrArgument.Wrapf("%s() delimiter must be one character", fn)
		}
	}

	return r, nil
}

// csvRow splits a single CSV record into its fields.
func csvRow(args ...any) (any, error) {
	r, err := csvReader("csv.row", args)
	if err != nil {
		return nil, err
	}

	rec, err := r.Read()
	if err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	return anyList(rec), nil
}

// csvDecode splits CSV text into a list of records.
func csvDecode(args ...any) (any, error) {
	r, err := csvReader("csv.decode", args)
	if err != nil {
		return nil, err
	}

	recs, err := r.ReadAll()
	if err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	out := make([]any, len(recs))
	for i, rec := range recs {
		out[i] = anyList(rec)
	}

	return out, nil
}

// csvEncode joins a list of fields into one CSV record.
func csvEncode(args ...any) (any, error) {
	if err := arity("csv.encode", args, 1, 1); err != nil {
		return nil, err
	}

	elems, err := value.List(args[0])
	if err != nil {
		return nil, err
	}

	rec := make([]string, len(elems))
	for i, e := range elems {
		rec[i] = value.Format(e)
	}

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(rec); err != nil {
		return nil, value.ErrConvert.Wrap(err)
	}

	w.Flush()

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
