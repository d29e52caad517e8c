package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	w, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), w)
	require.NoError(t, w.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	doc := `
name: heavy
rounds: 5
array:
  push: 10
  inline: false
strings:
  clones: 0
snapshot:
  path: out.snap
  compress: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "heavy", w.Name)
	assert.Equal(t, 5, w.Rounds)
	assert.Equal(t, 10, w.Array.Push)
	assert.Equal(t, 400, w.Array.Pop)
	assert.False(t, w.Array.Inline)
	assert.Equal(t, 0, w.Strings.Clones)
	assert.Equal(t, 256, w.Strings.Count)
	assert.Equal(t, SnapshotConfig{Path: "out.snap", Compress: true}, w.Snapshot)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		field   string
	}{
		{name: "empty document", doc: ""},
		{name: "override seed", doc: "seed: 42\n"},
		{name: "unknown key", doc: "roundz: 3\n", wantErr: true},
		{name: "zero rounds", doc: "rounds: 0\n", wantErr: true, field: "rounds"},
		{name: "negative pop", doc: "array:\n  pop: -1\n", wantErr: true, field: "array.pop"},
		{name: "bad type", doc: "rounds: many\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Default()
			err := Decode(strings.NewReader(tt.doc), w)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.field != "" {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.field, ve.Field)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	w := Default()
	w.Name = "again"
	w.Snapshot.Path = "x.snap"
	out, err := w.Marshal()
	require.NoError(t, err)

	back := &Workload{}
	require.NoError(t, Decode(strings.NewReader(string(out)), back))
	assert.Equal(t, w, back)
}
