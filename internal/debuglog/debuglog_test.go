package debuglog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebugfSilentByDefault(t *testing.T) {
	Enable(nil)
	require.False(t, Enabled())
	Debugf("nothing %d", 1) // must not panic
}

func TestDebugfWritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	Enable(&buf)
	t.Cleanup(func() { Enable(nil) })

	require.True(t, Enabled())
	Debugf("spill len=%d cap=%d", 5, 8)
	out := buf.String()
	require.Contains(t, out, "spill len=5 cap=8")
	require.Contains(t, out, "level=DEBUG")
	require.Contains(t, out, "component=egbase")
}
