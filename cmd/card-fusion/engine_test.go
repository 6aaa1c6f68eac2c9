//go:build !gocv
// +build !gocv

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_OpenCVWithoutTagFailsFast(t *testing.T) {
	batchDir := t.TempDir()
	for _, d := range []string{"up", "down", "left", "right"} {
		writeView(t, filepath.Join(batchDir, "cardA_"+d+".HEIC"), 50)
	}
	resultsDir := t.TempDir()

	code, out, errOut := execute(t, "-engine", "opencv", "-batch", batchDir, resultsDir, "overlay", "d")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "gocv")
	assert.NotContains(t, out, "Error processing")

	entries, err := os.ReadDir(resultsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
