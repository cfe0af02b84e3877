package rtf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRTF = `{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0\fnil\fcharset0 Calibri;}}
{\colortbl ;\red0\green0\blue0;}
{\*\generator Riched20 10.0.19041}\viewkind4\uc1
\pard\sa200\sl276\slmult1\f0\fs22 Date:\tab 03/14/2024\par
Set 1\par
Game 1.1 \endash  501 SIDO\par
Tony Marino\tab 100\tab 401\tab 1\tab 401\tab 100\tab Derek Fess\par
Player\tab Turn\tab Rnd\par
}`

func TestNormalize(t *testing.T) {
	t.Run("strips control words and destination groups", func(t *testing.T) {
		text, err := Normalize([]byte(sampleRTF))
		require.NoError(t, err)

		lines := Lines(text)
		require.Len(t, lines, 5)
		assert.Equal(t, "Date:\t03/14/2024", lines[0])
		assert.Equal(t, "Set 1", lines[1])
		assert.Equal(t, "Game 1.1 – 501 SIDO", lines[2])
		assert.Equal(t, "Tony Marino\t100\t401\t1\t401\t100\tDerek Fess", lines[3])
		assert.NotContains(t, text, "Calibri")
		assert.NotContains(t, text, "Riched20")
	})

	t.Run("decodes unicode escapes and skips the fallback character", func(t *testing.T) {
		text, err := Normalize([]byte(`{\rtf1 Tony Marino\tab \u8709?\tab 0\tab 1\par}`))
		require.NoError(t, err)
		assert.Equal(t, "Tony Marino\t"+NoHit+"\t0\t1", text)
	})

	t.Run("decodes hex escapes as windows-1252", func(t *testing.T) {
		text, err := Normalize([]byte(`{\rtf1 Andr\'e9 Smith\par}`))
		require.NoError(t, err)
		assert.Equal(t, "André Smith", text)
	})

	t.Run("keeps escaped braces and backslashes", func(t *testing.T) {
		text, err := Normalize([]byte(`{\rtf1 a\{b\}c\\d\par}`))
		require.NoError(t, err)
		assert.Equal(t, `a{b}c\d`, text)
	})

	t.Run("ignores raw newlines inside rtf source", func(t *testing.T) {
		text, err := Normalize([]byte("{\\rtf1 Derek\nFess\\par}"))
		require.NoError(t, err)
		assert.Equal(t, "DerekFess", text)
	})

	t.Run("collapses blank runs and repeated spaces", func(t *testing.T) {
		text, err := Normalize([]byte("{\\rtf1 Set  1\\par\\par\\par\\par\\par Game 1 . 2 - 501\\par}"))
		require.NoError(t, err)
		assert.Equal(t, "Set 1\n\nGame 1.2 - 501", text)
	})

	t.Run("passes plain text through", func(t *testing.T) {
		text, err := Normalize([]byte("Set 1\r\nGame 1.1 - Cricket   \r\n"))
		require.NoError(t, err)
		assert.Equal(t, "Set 1\nGame 1.1 - Cricket", text)
	})

	t.Run("strips a utf-8 byte order mark", func(t *testing.T) {
		raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{\rtf1 Set 1\par}`)...)
		text, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Set 1", text)
	})

	t.Run("decodes utf-16 with byte order mark", func(t *testing.T) {
		raw := []byte{0xFF, 0xFE, 'S', 0, 'e', 0, 't', 0, ' ', 0, '2', 0}
		text, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Set 2", text)
	})

	t.Run("falls back to windows-1252 for invalid utf-8", func(t *testing.T) {
		text, err := Normalize([]byte{'J', 'o', 's', 0xE9, ' ', 'R', 'u', 'i', 'z'})
		require.NoError(t, err)
		assert.Equal(t, "José Ruiz", text)
	})

	t.Run("rejects binary input", func(t *testing.T) {
		_, err := Normalize([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0xFF})
		require.Error(t, err)
		var normErr *NormalizationError
		assert.True(t, errors.As(err, &normErr))
	})
}

func TestIsRTF(t *testing.T) {
	assert.True(t, IsRTF([]byte(`{\rtf1\ansi}`)))
	assert.True(t, IsRTF([]byte("\n  {\\rtf1}")))
	assert.False(t, IsRTF([]byte("Set 1\nGame 1.1 - 501")))
}

func TestReadControl(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  control
	}{
		{"word with param", `\u8709?`, control{word: "u", param: 8709, hasParam: true, size: 6}},
		{"negative param", `\u-3913?`, control{word: "u", param: -3913, hasParam: true, size: 7}},
		{"space delimiter consumed", `\par next`, control{word: "par", size: 5}},
		{"hex escape", `\'e9x`, control{word: "'", symbol: 'é', size: 4}},
		{"control symbol", `\{`, control{word: "{", symbol: '{', size: 2}},
		{"hyphen without digits", `\li-x`, control{word: "li", size: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, readControl(tc.input))
		})
	}
}
