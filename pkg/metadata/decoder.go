// Package metadata decodes a note preamble mapping into core.Metadata.
package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/aretw0/stoat/pkg/core"
)

// Keys lists, per field, the preamble keys accepted for it. The first key present wins.
type Keys struct {
	Title    []string `json:"title" yaml:"title"`
	Created  []string `json:"created" yaml:"created"`
	Modified []string `json:"modified" yaml:"modified"`
}

// DefaultKeys returns the canonical key names.
func DefaultKeys() Keys {
	return Keys{
		Title:    []string{"title"},
		Created:  []string{"created"},
		Modified: []string{"modified"},
	}
}

// Decoder maps a preamble to Metadata. The zero value uses DefaultKeys.
type Decoder struct {
	Keys Keys
	// Location applied to dates without a zone. Defaults to UTC.
	Location *time.Location
}

// NewDecoder creates a Decoder for the given keys.
// Empty key lists fall back to the defaults.
func NewDecoder(keys Keys) *Decoder {
	def := DefaultKeys()
	if len(keys.Title) == 0 {
		keys.Title = def.Title
	}
	if len(keys.Created) == 0 {
		keys.Created = def.Created
	}
	if len(keys.Modified) == 0 {
		keys.Modified = def.Modified
	}
	return &Decoder{Keys: keys, Location: time.UTC}
}

// Decode never fails. Unknown keys are ignored; unusable dates are dropped and
// reported as diagnostics wrapping core.ErrUnparsableDate.
func (d *Decoder) Decode(raw map[string]any) (core.Metadata, []core.Diagnostic) {
	var meta core.Metadata
	if len(raw) == 0 {
		return meta, nil
	}

	keys := d.keys()
	var diags []core.Diagnostic

	if key, v, ok := lookup(raw, keys.Title); ok {
		if s, isString := v.(string); isString {
			meta.Title = &s
		} else {
			diags = append(diags, core.Diagnostic{
				Construct: key,
				Err:       fmt.Errorf("title is %T, not a string", v),
			})
		}
	}

	meta.Created, diags = d.date(raw, keys.Created, diags)
	meta.Modified, diags = d.date(raw, keys.Modified, diags)

	return meta, diags
}

func (d *Decoder) date(raw map[string]any, keys []string, diags []core.Diagnostic) (*time.Time, []core.Diagnostic) {
	key, v, ok := lookup(raw, keys)
	if !ok {
		return nil, diags
	}
	t, err := d.parseDate(v)
	if err != nil {
		return nil, append(diags, core.Diagnostic{
			Construct: key,
			Err:       fmt.Errorf("%w: %v", core.ErrUnparsableDate, err),
		})
	}
	return &t, diags
}

func (d *Decoder) parseDate(v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t.UTC(), nil
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("value is %T, not a string", v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}
	loc := time.UTC
	if d != nil && d.Location != nil {
		loc = d.Location
	}
	t, err := cast.ToTimeInDefaultLocationE(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a recognized date", s)
	}
	return t.UTC(), nil
}

func (d *Decoder) keys() Keys {
	if d == nil {
		return DefaultKeys()
	}
	if len(d.Keys.Title) == 0 && len(d.Keys.Created) == 0 && len(d.Keys.Modified) == 0 {
		return DefaultKeys()
	}
	return d.Keys
}

func lookup(raw map[string]any, keys []string) (string, any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return k, v, true
		}
	}
	return "", nil, false
}
