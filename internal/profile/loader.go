package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source records where the active profile came from.
type Source int

const (
	// SourcePlaceholder means no private profile was found and the built-in
	// template is in use.
	SourcePlaceholder Source = iota
	// SourceLoaded means the profile was read from a private file.
	SourceLoaded
)

func (s Source) String() string {
	switch s {
	case SourceLoaded:
		return "loaded"
	case SourcePlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Load reads the private profile at path. An empty path or a file that does
// not exist yields the placeholder profile and SourcePlaceholder with a nil
// error; absence of private data is normal. A file that exists but cannot be
// read or parsed is an error.
//
// The format is chosen by extension: .yaml/.yml use YAML, anything else JSON.
func Load(path string) (Profile, Source, error) {
	if path == "" {
		return Placeholder(), SourcePlaceholder, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Placeholder(), SourcePlaceholder, nil
	}
	if err != nil {
		return Profile{}, SourcePlaceholder, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Profile{}, SourcePlaceholder, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, SourceLoaded, nil
}

// Parse decodes a profile document. ext selects the format (".yaml", ".yml"
// or JSON for everything else).
func Parse(data []byte, ext string) (Profile, error) {
	var p Profile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, err
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return Profile{}, err
		}
	}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Contact.Email) == "" {
		return errors.New("contact.email is required")
	}
	return nil
}
