package bank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBankYAML []byte

// Format identifies a bank file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the decoder by file extension; anything other than
// .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// bankFile is the on-disk document layout.
type bankFile struct {
	Questions []Question `yaml:"questions" json:"questions"`
}

var defaultBank = sync.OnceValues(func() (*Bank, error) {
	return Parse(defaultBankYAML, FormatYAML)
})

// Default returns the embedded question bank.
func Default() (*Bank, error) {
	b, err := defaultBank()
	if err != nil {
		return nil, fmt.Errorf("embedded bank: %w", err)
	}
	return b, nil
}

// Load reads, parses, and validates a bank file. An empty path selects the
// embedded bank.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	b, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes a bank document, checks it against the bank schema, then
// builds a validated Bank.
func Parse(data []byte, format Format) (*Bank, error) {
	decode := decodeYAML
	if format == FormatJSON {
		decode = decodeJSON
	}

	var doc any
	if err := decode(data, &doc, false); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("parse bank: empty document")
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var f bankFile
	if err := decode(data, &f, true); err != nil {
		return nil, err
	}
	return New(f.Questions)
}

func decodeJSON(data []byte, v any, strict bool) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, v any, strict bool) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(strict)
	if err := decoder.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New("parse yaml: empty document")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("parse yaml: multiple documents are not supported")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
