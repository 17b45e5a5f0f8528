package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteIsHex(t *testing.T) {
	palette := append([]lipgloss.Color{
		ColorSuccess, ColorError, ColorWarning, ColorInfo, ColorPrimary, ColorMuted,
	}, GradientColors...)

	for _, c := range palette {
		assert.Regexp(t, `^#[0-9A-F]{6}$`, string(c))
	}
}

func TestDisableColors(t *testing.T) {
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
	lipgloss.SetColorProfile(termenv.TrueColor)

	colored := ErrorStyle().Render("down")
	assert.NotEqual(t, "down", colored)

	DisableColors()

	for name, style := range map[string]lipgloss.Style{
		"success": SuccessStyle(),
		"error":   ErrorStyle(),
		"warning": WarningStyle(),
		"muted":   MutedStyle(),
	} {
		assert.Equal(t, "down", style.Render("down"), name)
	}
}

func TestPrintWarning(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = stderr })

	PrintWarning("stdout isn't a terminal")
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	assert.Contains(t, buf.String(), SymbolWarning+" ")
	assert.Contains(t, buf.String(), "stdout isn't a terminal\n")
}
