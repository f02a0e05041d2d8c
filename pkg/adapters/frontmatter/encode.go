package frontmatter

import (
	"bytes"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/stoat/pkg/core"
)

// preamble fixes the key order of the encoded mapping.
type preamble struct {
	Title    *string `yaml:"title,omitempty"`
	Created  string  `yaml:"created,omitempty"`
	Modified string  `yaml:"modified,omitempty"`
}

// Encode renders meta as a `---` delimited YAML preamble.
// Absent fields are omitted; all-absent metadata encodes to nothing.
func Encode(meta core.Metadata) ([]byte, error) {
	if meta.IsZero() {
		return nil, nil
	}

	p := preamble{
		Title:    meta.Title,
		Created:  formatTime(meta.Created),
		Modified: formatTime(meta.Modified),
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(p); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
