// Package export writes a puzzle session out for things outside this module:
// a manifest for the game client, a printable sheet, and cut lines for a
// laser or CNC cutter.
package export

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/erinpentecost/LivelyJigsaw/internal/cutter"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"gopkg.in/yaml.v3"
)

// Manifest is what the game client needs to rebuild a session.
type Manifest struct {
	Source   string                 `json:"source,omitempty" yaml:"source,omitempty"`
	Seed     uint64                 `json:"seed" yaml:"seed"`
	Session  *jigsaw.Session        `json:"session" yaml:"session"`
	Textures []*cutter.PieceTexture `json:"textures,omitempty" yaml:"textures,omitempty"`
}

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown manifest format %q", s)
}

func WriteManifest(w io.Writer, m Manifest, f Format) error {
	var (
		raw []byte
		err error
	)
	switch f {
	case YAML:
		raw, err = yaml.Marshal(m)
	default:
		raw, err = sonic.ConfigStd.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal %s manifest: %w", f, err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write %s manifest: %w", f, err)
	}
	return nil
}

func ReadManifest(r io.Reader, f Format) (Manifest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Manifest{}, fmt.Errorf("read %s manifest: %w", f, err)
	}
	var m Manifest
	switch f {
	case YAML:
		err = yaml.Unmarshal(raw, &m)
	default:
		err = sonic.ConfigStd.Unmarshal(raw, &m)
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("parse %s manifest: %w", f, err)
	}
	return m, nil
}
