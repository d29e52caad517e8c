// Package config loads the workload definitions driven by egstress.
//
// A workload is a YAML document; every field is optional and falls back to
// the values in Default. Unknown keys are rejected so typos surface early.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Workload describes one stress run over arrays and strings.
type Workload struct {
	Name   string `yaml:"name"`
	Seed   int64  `yaml:"seed"`
	Rounds int    `yaml:"rounds"`
	Debug  bool   `yaml:"debug"`

	Array    ArrayLoad      `yaml:"array"`
	Strings  StringLoad     `yaml:"strings"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// ArrayLoad is the per-round mix of array operations.
type ArrayLoad struct {
	Push          int `yaml:"push"`
	Pop           int `yaml:"pop"`
	RemoveShuffle int `yaml:"remove_shuffle"`
	// Inline runs the same mix on an inline array as well.
	Inline bool `yaml:"inline"`
}

// StringLoad is the per-round mix of string operations.
type StringLoad struct {
	Count     int `yaml:"count"`
	Clones    int `yaml:"clones"`
	AppendLen int `yaml:"append_len"`
}

// SnapshotConfig controls the frame written at the end of a run.
type SnapshotConfig struct {
	Path     string `yaml:"path"`
	Compress bool   `yaml:"compress"`
}

// ValidationError reports one invalid field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s (got %v)", ve.Field, ve.Message, ve.Value)
}

// Default returns the workload used when no file is given.
func Default() *Workload {
	return &Workload{
		Name:   "default",
		Seed:   1,
		Rounds: 100,
		Array: ArrayLoad{
			Push:          1000,
			Pop:           400,
			RemoveShuffle: 100,
			Inline:        true,
		},
		Strings: StringLoad{
			Count:     256,
			Clones:    4,
			AppendLen: 16,
		},
	}
}

// Load reads a workload from path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Workload, error) {
	w := Default()
	if path == "" {
		return w, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := Decode(f, w); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return w, nil
}

// Decode reads YAML from r into w and validates the result. An empty
// document leaves w as it was.
func Decode(r io.Reader, w *Workload) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(w); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return w.Validate()
}

// Validate checks that every count is usable.
func (w *Workload) Validate() error {
	var errs []error
	check := func(field string, v, least int) {
		if v < least {
			errs = append(errs, &ValidationError{Field: field, Value: v, Message: fmt.Sprintf("must be at least %d", least)})
		}
	}
	check("rounds", w.Rounds, 1)
	check("array.push", w.Array.Push, 0)
	check("array.pop", w.Array.Pop, 0)
	check("array.remove_shuffle", w.Array.RemoveShuffle, 0)
	check("strings.count", w.Strings.Count, 0)
	check("strings.clones", w.Strings.Clones, 0)
	check("strings.append_len", w.Strings.AppendLen, 0)
	return errors.Join(errs...)
}

// Marshal renders w as YAML.
func (w *Workload) Marshal() ([]byte, error) {
	return yaml.Marshal(w)
}
