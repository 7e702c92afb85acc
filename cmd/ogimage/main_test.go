// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	defer f.Close()

	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 400, 300))))
}

func TestRunUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		batch string
		args  []string
	}{
		{"no arguments", "", nil},
		{"one argument", "", []string{"in.png"}},
		{"three arguments", "", []string{"a.png", "b.webp", "c"}},
		{"batch with arguments", "imgs", []string{"a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, run(t.Context(), &bytes.Buffer{}, tt.batch, tt.args), errUsage)
		})
	}
}

func TestRunSingle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "card.png")
	output := filepath.Join(dir, "ogtag-en.webp")
	writePNG(t, input)

	var out bytes.Buffer
	require.NoError(t, run(t.Context(), &out, "", []string{input, output}))

	assert.FileExists(t, output)
	assert.Regexp(t, `^✓ Converted: ogtag-en\.webp \(\d+KB\)\n$`, out.String())
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "b.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(t.Context(), &out, dir, nil))

	assert.Contains(t, out.String(), "✓ Converted: a.webp")
	assert.Contains(t, out.String(), "✓ Converted: b.webp")
	assert.Contains(t, out.String(), "Batch complete: 2 converted, 0 failed\n")
}
