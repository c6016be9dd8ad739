package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ep.md")
	require.NoError(t, os.WriteFile(path, []byte("## Transcrição\n[00:00:00] a\n[00:00:05] b\n"), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{path})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Fixed: "+path+"\n", out.String())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "## Transcrição\n[00:00:00] a\n\n[00:00:05] b\n", string(got))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	out.Reset()
	rootCmd.SetArgs([]string{path})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "No changes: "+path+"\n", out.String())
}

func TestFixTranscriptNeedsOneArg(t *testing.T) {
	rootCmd.SetArgs([]string{})
	assert.Error(t, rootCmd.Execute())
}
