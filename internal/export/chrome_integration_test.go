//go:build integration

package export

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findChrome(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("Chrome not found; set CHROME_PATH to run")
	return ""
}

func TestChromeRenderer_RenderPDF(t *testing.T) {
	renderer := NewChromeRenderer(findChrome(t), nil)

	pdf, err := renderer.RenderPDF(context.Background(), "<!DOCTYPE html><html><body><h1>Hello</h1></body></html>")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
