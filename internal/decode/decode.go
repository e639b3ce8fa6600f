// Package decode reads configuration-style files whose format is chosen by
// extension: .yaml/.yml via yaml.v3 and .toml via BurntSushi/toml.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .yaml, .yml or .toml")

// File decodes the file at path into v.
func File(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	return Bytes(filepath.Ext(path), data, v)
}

// Bytes decodes data in the format named by ext into v.
func Bytes(ext string, data []byte, v any) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse YAML: %w", err)
		}
		return nil
	case ".toml":
		meta, err := toml.Decode(string(data), v)
		if err != nil {
			return fmt.Errorf("parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse TOML: unknown key %q", undecoded[0].String())
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
