package rtf

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	splitNumber = regexp.MustCompile(`(\d) *\. *(\d)`)
	multiSpace  = regexp.MustCompile(` {2,}`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
)

// destinations whose content never reaches the document body.
var destinations = map[string]bool{
	"fonttbl":           true,
	"colortbl":          true,
	"stylesheet":        true,
	"info":              true,
	"generator":         true,
	"mmathPr":           true,
	"pict":              true,
	"header":            true,
	"footer":            true,
	"listtable":         true,
	"listoverridetable": true,
	"rsidtbl":           true,
	"themedata":         true,
	"datastore":         true,
	"latentstyles":      true,
	"xmlnstbl":          true,
}

// IsRTF reports whether raw starts with an RTF document header.
func IsRTF(raw []byte) bool {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(raw, bomUTF8), " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte(`{\rtf`))
}

// Normalize converts a raw transcript into plain text lines. RTF control
// words and groups are stripped, paragraph breaks become newlines and tab
// controls become tab characters. Input that is not RTF is treated as
// already-exported plain text and only tidied.
func Normalize(raw []byte) (string, error) {
	src, err := decode(raw)
	if err != nil {
		return "", &NormalizationError{Err: err}
	}

	var text string
	if strings.HasPrefix(strings.TrimLeft(src, " \t\r\n"), `{\rtf`) {
		text = strip(src)
	} else {
		log.Debug("Transcript has no RTF header, treating as plain text")
		text = src
	}
	return tidy(text), nil
}

// Lines splits normalized text into lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func decode(raw []byte) (string, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		raw = raw[len(bomUTF8):]
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("decode utf-16: %w", err)
		}
		raw = out
	}

	if bytes.IndexByte(raw, 0) >= 0 {
		return "", errors.New("transcript contains binary data")
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode windows-1252: %w", err)
	}
	return string(out), nil
}

type walker struct {
	out   strings.Builder
	stack []group
	// fallback counts the characters still to drop after a \uN escape.
	fallback int
}

func strip(src string) string {
	w := &walker{stack: []group{{uc: 1}}}
	for i := 0; i < len(src); {
		switch c := src[i]; c {
		case '{':
			w.stack = append(w.stack, w.top())
			w.fallback = 0
			i++
			if strings.HasPrefix(src[i:], `\*`) {
				w.stack[len(w.stack)-1].skip = true
				i += 2
			}
		case '}':
			if len(w.stack) > 1 {
				w.stack = w.stack[:len(w.stack)-1]
			}
			w.fallback = 0
			i++
		case '\\':
			ctl := readControl(src[i:])
			i += ctl.size
			w.apply(ctl)
		case '\r', '\n':
			i++
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			i += size
			w.emit(r)
		}
	}
	return w.out.String()
}

func (w *walker) top() group {
	return w.stack[len(w.stack)-1]
}

func (w *walker) emit(r rune) {
	if w.fallback > 0 {
		w.fallback--
		return
	}
	if !w.top().skip {
		w.out.WriteRune(r)
	}
}

func (w *walker) write(r rune) {
	w.fallback = 0
	if !w.top().skip {
		w.out.WriteRune(r)
	}
}

func (w *walker) apply(ctl control) {
	switch ctl.word {
	case "'":
		w.emit(ctl.symbol)
	case "\\", "{", "}":
		w.emit(ctl.symbol)
	case "par", "line", "row", "sect", "page":
		w.write('\n')
	case "tab", "cell":
		w.write('\t')
	case "u":
		r := ctl.param
		if r < 0 {
			r += 65536
		}
		w.write(rune(r))
		w.fallback = w.top().uc
	case "uc":
		w.stack[len(w.stack)-1].uc = ctl.param
	case "~":
		w.write(' ')
	case "_":
		w.write('-')
	case "endash":
		w.write('–')
	case "emdash":
		w.write('—')
	case "lquote", "rquote":
		w.write('\'')
	case "ldblquote", "rdblquote":
		w.write('"')
	case "bullet":
		w.write('•')
	default:
		if destinations[ctl.word] {
			w.stack[len(w.stack)-1].skip = true
		}
	}
}

// readControl parses the control word or symbol at the start of s, which
// must begin with a backslash.
func readControl(s string) control {
	if len(s) < 2 {
		return control{size: len(s)}
	}
	c := s[1]
	switch {
	case isLetter(c):
		i := 1
		for i < len(s) && isLetter(s[i]) {
			i++
		}
		ctl := control{word: s[1:i], size: i}
		j := i
		if j < len(s) && s[j] == '-' {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			if n, err := strconv.Atoi(s[i:k]); err == nil {
				ctl.param = n
				ctl.hasParam = true
				ctl.size = k
			}
		}
		if ctl.size < len(s) && s[ctl.size] == ' ' {
			ctl.size++
		}
		return ctl
	case c == '\'':
		if len(s) >= 4 {
			if b, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				return control{word: "'", symbol: charmap.Windows1252.DecodeByte(byte(b)), size: 4}
			}
		}
		return control{size: 2}
	case c == '\r' || c == '\n':
		return control{word: "par", size: 2}
	default:
		return control{word: string(c), symbol: rune(c), size: 2}
	}
}

func tidy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = splitNumber.ReplaceAllString(text, "$1.$2")
	text = multiSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.Trim(text, "\n")
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
