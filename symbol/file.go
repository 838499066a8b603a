package symbol

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/ardnew/px/value"
)

// decoder decodes a symbol file into a document.
type decoder func(data []byte) (any, error)

// decoders maps file extensions to decoders. Files with any other extension
// are decoded as YAML, which also accepts JSON.
//
//nolint:gochecknoglobals
var decoders = map[string]decoder{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
	".json": decodeJSON,
	".env":  decodeDotenv,
}

// LoadFile reads the symbols defined in the file at path.
//
// The format is chosen by extension: YAML (.yaml, .yml), TOML (.toml), JSON
// (.json), or dotenv (.env). The document must be a mapping; its keys
// become symbol names.
func LoadFile(path string) (map[string]any, error) {
	fail := func(err error) error {
		return ErrSymbolFile.Wrap(err).With(slog.String("path", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fail(err)
	}

	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		decode = decodeYAML
	}

	doc, err := decode(data)
	if err != nil {
		return nil, fail(err)
	}

	if doc == nil {
		return map[string]any{}, nil
	}

	syms, ok := value.Normalize(doc).(map[string]any)
	if !ok {
		return nil, fail(value.ErrConvert.Wrapf(
			"document is a '%s', not a mapping", value.TypeName(doc)))
	}

	return syms, nil
}

func decodeYAML(data []byte) (any, error) {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func decodeTOML(data []byte) (any, error) {
	doc := map[string]any{}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func decodeJSON(data []byte) (any, error) {
	var doc any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func decodeDotenv(data []byte) (any, error) {
	env, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any, len(env))
	for k, v := range env {
		doc[k] = v
	}

	return doc, nil
}
