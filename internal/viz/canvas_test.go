package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/orbitals/internal/cloud"
)

func TestCanvasSetClear(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	assert.Equal(t, rune(0x2801), c.Grid[0][0])
	assert.Equal(t, rune(0x2880), c.Grid[0][1])
	assert.Equal(t, 2, c.Lit())

	c.Set(1, 0)
	assert.Equal(t, rune(0x2809), c.Grid[0][0])
	assert.Equal(t, 2, c.Lit())

	c.Clear()
	assert.Equal(t, rune(blank), c.Grid[0][0])
	assert.Equal(t, rune(blank), c.Grid[0][1])
	assert.Equal(t, 0, c.Lit())
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Plot(4, 0, cloud.RGB{1, 2, 3})
	c.Plot(0, 8, cloud.RGB{1, 2, 3})
	assert.Equal(t, 0, c.Lit())
}

func TestCanvasPlotColors(t *testing.T) {
	c := NewCanvas(3, 1)
	red := cloud.RGB{255, 0, 0}
	c.Plot(2, 1, red)
	assert.Equal(t, red, c.Colors[0][1])
	assert.Equal(t, cloud.RGB{}, c.Colors[0][0])

	c.Clear()
	assert.Equal(t, cloud.RGB{}, c.Colors[0][1])
	assert.Equal(t, 0, c.Lit())
}

func TestCanvasFill(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Fill(1, 2, cloud.RGB{9, 9, 9})
	assert.Equal(t, rune(0x28ff), c.Grid[0][0])
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 1)
	c.DrawLine(0, 0, 19, 0, cloud.RGB{0, 255, 0})
	assert.Equal(t, 10, c.Lit())
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Plot(0, 0, cloud.RGB{100, 150, 255})

	plain := c.String()
	assert.Equal(t, 2, strings.Count(plain, "\n"))
	assert.Contains(t, c.Render(), "⠁")
	assert.Equal(t, 2, strings.Count(c.Render(), "\n"))
}
