// Package source reads and writes source files in their configured encoding
package source

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding names accepted in configuration
const (
	UTF8       = "utf-8"
	Windows874 = "windows-874"
)

// Lookup returns the codec for an encoding name, nil for UTF-8
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", UTF8, "utf8":
		return nil, nil
	case Windows874, "tis-620", "tis620", "cp874":
		return charmap.Windows874, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}

// Read returns the file content decoded to UTF-8
func Read(path, enc string) (string, error) {
	codec, err := Lookup(enc)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if codec == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s is not valid UTF-8", path)
		}
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(codec.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s as %s: %w", path, enc, err)
	}
	return string(decoded), nil
}

// Write encodes content and overwrites the file, keeping its mode
func Write(path, content, enc string) error {
	codec, err := Lookup(enc)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	data := []byte(content)
	if codec != nil {
		data, _, err = transform.Bytes(codec.NewEncoder(), data)
		if err != nil {
			return fmt.Errorf("failed to encode %s as %s: %w", path, enc, err)
		}
	}

	return os.WriteFile(path, data, mode)
}
