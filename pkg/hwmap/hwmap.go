// Package hwmap reads and writes the hardware map consumed by the twister
// test runner: a YAML sequence with one record per attached board interface.
package hwmap

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownPlatform is the platform value of an entry that has not been resolved.
const UnknownPlatform = "unknown"

// Entry is one board interface in the hardware map.
type Entry struct {
	ID        string  `yaml:"id"`
	Platform  string  `yaml:"platform"`
	Serial    *string `yaml:"serial"`
	Runner    string  `yaml:"runner"`
	Connected bool    `yaml:"connected"`

	// Extra carries every other key of the record (product, baud, fixtures...)
	// so that it survives a load/save cycle.
	Extra map[string]interface{} `yaml:",inline"`

	// keys holds the keys of the decoded record; nil for entries built in code.
	keys map[string]bool
}

// UnmarshalYAML decodes a record and remembers which keys it carried, so that
// a later save writes back "serial: null" and leaves out keys that were absent.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	type plain Entry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	e.keys = make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		e.keys[node.Content[i].Value] = true
	}
	return nil
}

// MarshalYAML encodes the record with sorted keys. A field is written when the
// decoded record had it or when it holds a value; entries built in code always
// get id, platform and connected.
func (e Entry) MarshalYAML() (interface{}, error) {
	out := make(map[string]interface{}, len(e.Extra)+5)
	for k, v := range e.Extra {
		out[k] = v
	}
	out["id"] = e.ID
	if e.keep("platform", e.Platform != "") {
		out["platform"] = e.Platform
	}
	if e.keep("serial", e.Serial != nil) {
		out["serial"] = e.Serial
	}
	if e.keep("runner", e.Runner != "") {
		out["runner"] = e.Runner
	}
	if e.keep("connected", e.Connected) {
		out["connected"] = e.Connected
	}
	return out, nil
}

func (e Entry) keep(key string, set bool) bool {
	if set || e.keys[key] {
		return true
	}
	return e.keys == nil && (key == "platform" || key == "connected")
}

// SerialNumber returns the probe serial number in the form nrfjprog expects
// for --snr, i.e. without leading zeros.
func (e Entry) SerialNumber() string {
	return strings.TrimLeft(e.ID, "0")
}

// SerialPath returns the serial interface path, or "" when the record has none.
func (e Entry) SerialPath() string {
	if e.Serial == nil {
		return ""
	}
	return *e.Serial
}

// Resolved reports whether the entry carries a known platform.
func (e Entry) Resolved() bool {
	return e.Platform != "" && e.Platform != UnknownPlatform
}

// Map is an ordered hardware map.
type Map []Entry

// Without returns the entries for which drop returns false, preserving order.
func (m Map) Without(drop func(Entry) bool) Map {
	out := make(Map, 0, len(m))
	for _, e := range m {
		if !drop(e) {
			out = append(out, e)
		}
	}
	return out
}

// Parse decodes a hardware map document. An empty document is an empty map.
func Parse(data []byte) (Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse hardware map: %w", err)
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// Load reads the hardware map at path.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hardware map: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Marshal encodes the map with two-space indentation.
func Marshal(m Map) ([]byte, error) {
	if m == nil {
		m = Map{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode hardware map: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode hardware map: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the map to path, replacing any existing content.
func Save(path string, m Map) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write hardware map: %w", err)
	}
	return nil
}
