package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "boxoffice/pkg/domain-errors"
)

func TestParse(t *testing.T) {
	t.Run("parses six-digit hex with implicit alpha", func(t *testing.T) {
		c, err := Parse("#1570EF")
		require.NoError(t, err)
		assert.Equal(t, Color{R: 0x15, G: 0x70, B: 0xEF, A: 1}, c)
	})

	t.Run("parses eight-digit hex with alpha", func(t *testing.T) {
		c, err := Parse("FB6514FF")
		require.NoError(t, err)
		assert.Equal(t, uint8(0xFB), c.R)
		assert.InDelta(t, 1.0, c.A, 1e-9)
	})

	t.Run("expands three-digit shorthand", func(t *testing.T) {
		c, err := Parse("#fff")
		require.NoError(t, err)
		assert.Equal(t, White, c)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "#12345", "zzzzzz", "#GGGGGG"} {
			_, err := Parse(s)
			require.Error(t, err, "input %q", s)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestHexRoundTrip(t *testing.T) {
	c := MustParse("#EE46BCFF")
	assert.Equal(t, "#EE46BCFF", c.Hex())
}

func TestLighten(t *testing.T) {
	base := MustParse("#1570EF")
	lightened := base.Lighten(0.85)

	assert.Greater(t, lightened.Lightness(), base.Lightness())
	// Lightening white is a no-op.
	assert.Equal(t, 1.0, White.Lighten(0.85).Lightness())
}

func TestFade(t *testing.T) {
	faded := White.Fade(0.5)
	assert.InDelta(t, 0.5, faded.A, 1e-9)
	// Fade is relative to current alpha.
	assert.InDelta(t, 0.25, faded.Fade(0.5).A, 1e-9)
}

// TestForeground asserts the contrast rule: white unless the fill's lightness
// exceeds the mid threshold, in which case black.
func TestForeground(t *testing.T) {
	assert.Equal(t, White, Foreground(MustParse("#292929")))
	assert.Equal(t, Black, Foreground(MustParse("#F2F4F7")))
	assert.Equal(t, Black, Foreground(White))
	assert.Equal(t, White, Foreground(Black))
}
