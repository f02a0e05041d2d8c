// Package frontmatter separates a note preamble from its markdown body.
package frontmatter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"github.com/aretw0/introspection"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/stoat/pkg/core"
)

// Splitter extracts `---` (YAML) and `+++` (TOML) preambles.
// It holds no state and may be shared between goroutines.
type Splitter struct{}

// NewSplitter creates a Splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Split returns the preamble mapping and the remaining body.
//
// Without a preamble the mapping is nil and the body is the whole text.
// When the preamble exists but is not a mapping, the body is still separated
// and the returned error wraps core.ErrMalformedPreamble.
func (s *Splitter) Split(text []byte) (map[string]any, []byte, error) {
	var (
		raw       map[string]any
		decodeErr error
	)

	lenient := func(unmarshal frontmatter.UnmarshalFunc) frontmatter.UnmarshalFunc {
		return func(data []byte, v interface{}) error {
			var m map[string]any
			if err := unmarshal(data, &m); err != nil {
				decodeErr = err
				return nil
			}
			normalizeTimes(m)
			raw = m
			return nil
		}
	}

	body, err := frontmatter.Parse(bytes.NewReader(text), &raw,
		frontmatter.NewFormat("---", "---", lenient(yaml.Unmarshal)),
		frontmatter.NewFormat("+++", "+++", lenient(toml.Unmarshal)),
	)
	if err != nil {
		return nil, text, fmt.Errorf("read preamble: %w", err)
	}

	if decodeErr != nil {
		return nil, body, fmt.Errorf("%w: %v", core.ErrMalformedPreamble, decodeErr)
	}
	return raw, body, nil
}

// normalizeTimes turns native YAML and TOML timestamps into strings, so that
// every preamble format hands the metadata decoder the same value types.
// A bare date stays a bare date.
func normalizeTimes(m map[string]any) {
	for k, v := range m {
		t, ok := v.(time.Time)
		if !ok {
			continue
		}
		if t.Location() == time.UTC && t.Equal(t.Truncate(24*time.Hour)) {
			m[k] = t.Format(time.DateOnly)
			continue
		}
		m[k] = t.Format(time.RFC3339Nano)
	}
}

// ComponentType implements introspection.Component.
func (s *Splitter) ComponentType() string {
	return "frontmatter"
}

var _ introspection.Component = (*Splitter)(nil)
