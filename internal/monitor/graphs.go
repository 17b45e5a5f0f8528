package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// Health strip glyphs for the right-axis series.
const (
	healthUpGlyph   = '█'
	healthDownGlyph = '▁'
)

// shareGlyph fills the distribution bar.
const shareGlyph = "█"

// requestsRange returns the left-axis range for a request series. The
// lower bound is pinned at zero; the upper bound is the largest value,
// or 1 for an all-zero series so a flat line still renders.
func requestsRange(data []float64) (minVal, maxVal float64) {
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	return 0, maxVal
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RenderBrailleSparkline renders a line graph using braille characters.
// Each character represents 2 horizontal data points with 4 vertical
// levels per row. Values are scaled against [minVal, maxVal]; data shorter
// than the width is right-aligned so the newest sample is always at the edge.
func RenderBrailleSparkline(data []float64, width, height int, minVal, maxVal float64, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	totalDots := height * 4
	targetPoints := width * 2

	resampled := data
	if len(data) > targetPoints {
		resampled = resampleData(data, targetPoints)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	horizOffset := targetPoints - len(resampled)
	if horizOffset < 0 {
		horizOffset = 0
	}

	for i, val := range resampled {
		normalized := normalizeValue(val, minVal, maxVal)
		dotHeight := clampInt(int(math.Round(normalized*float64(totalDots))), totalDots)
		// Keep a baseline dot so zero still reads as a point on the line
		if dotHeight == 0 {
			dotHeight = 1
		}

		charCol := (i + horizOffset) / 2
		if charCol >= width {
			continue
		}
		subCol := (i + horizOffset) % 2

		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - (dot / 4)
			if row < 0 {
				continue
			}
			subRow := 3 - (dot % 4)
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, 0, height)
	for _, row := range grid {
		lines = append(lines, style.Render(string(row)))
	}
	return strings.Join(lines, "\n")
}

// RenderHealthStrip renders the 0/1 health series on its fixed [0,1] axis:
// one cell per sample, full and green when up, a low red bar when down.
// Right-aligned like the sparkline.
func RenderHealthStrip(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	if len(data) > width {
		data = data[len(data)-width:]
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(data)))
	for _, v := range data {
		if v >= 0.5 {
			b.WriteString(StatusUpStyle.UnsetBold().Render(string(healthUpGlyph)))
		} else {
			b.WriteString(StatusDownStyle.UnsetBold().Render(string(healthDownGlyph)))
		}
	}
	return b.String()
}

// shareWidths splits width cells between values proportionally using the
// largest remainder method, so the cells always add up to width when any
// value is positive.
func shareWidths(values []float64, width int) []int {
	widths := make([]int, len(values))
	if width <= 0 {
		return widths
	}

	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return widths
	}

	remainders := make([]float64, len(values))
	used := 0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		exact := v / total * float64(width)
		widths[i] = int(exact)
		remainders[i] = exact - float64(widths[i])
		used += widths[i]
	}

	for used < width {
		best := -1
		for i, r := range remainders {
			if values[i] > 0 && (best < 0 || r > remainders[best]) {
				best = i
			}
		}
		widths[best]++
		remainders[best] = -1
		used++
	}
	return widths
}

// RenderShareBar renders values as one stacked horizontal bar, each slice
// in its own color. Colors cycle when there are more values than colors.
func RenderShareBar(values []float64, colors []string, width int) string {
	if width <= 0 {
		return ""
	}

	widths := shareWidths(values, width)
	var b strings.Builder
	drawn := 0
	for i, w := range widths {
		if w == 0 {
			continue
		}
		style := lipgloss.NewStyle()
		if len(colors) > 0 {
			style = style.Foreground(lipgloss.Color(colors[i%len(colors)]))
		}
		b.WriteString(style.Render(strings.Repeat(shareGlyph, w)))
		drawn += w
	}
	if drawn < width {
		b.WriteString(lipgloss.NewStyle().Foreground(ColorTextMuted).Render(strings.Repeat("░", width-drawn)))
	}
	return b.String()
}

// resampleData resamples data to the target size.
// When downsampling (compressing), uses max-based sampling to preserve peaks/spikes.
// When upsampling (expanding), uses linear interpolation.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}

	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	// Downsampling: use max within each bucket to preserve peaks
	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			if start < 0 {
				start = 0
			}

			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	// Upsampling: linear interpolation
	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}

	return result
}
