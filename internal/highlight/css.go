package highlight

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	cssWhite     = colorful.Color{R: 1, G: 1, B: 1}
	cssLightGray = mustHex("#cccccc")
	cssGray      = mustHex("#bbbbbb")
	cssDimGray   = mustHex("#aaaaaa")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// cssSpans adds selector and colour spans to a CSS block. text is the code
// region of the block and off its offset within the block.
func cssSpans(text []rune, off int) []Span {
	var spans []Span
	n := len(text)
	for i := 0; i < n; i++ {
		c := text[i]
		switch {
		case c == '.' || c == '#':
			if i+1 >= n {
				return spans
			}
			if unicode.IsSpace(text[i+1]) || isDigit(text[i+1]) {
				continue
			}
			end := indexAny(text, i, " {")
			if end < 0 {
				end = n
			}
			spans = append(spans, Span{Start: off + i, Length: end - i, Category: Keyword})
			i = end
		case c == 'c' && hasPrefixAt(text, i, "color"):
			colon := indexRune(text, i+5, ':')
			if colon < 0 {
				i += 4
				continue
			}
			v := colon + 1
			for v < n && unicode.IsSpace(text[v]) {
				v++
			}
			end := indexRune(text, v, ';')
			if end < 0 {
				end = n
			}
			bg, ok := parseCSSColor(string(text[v:end]))
			if !ok || end == v {
				i = v - 1
				continue
			}
			spans = append(spans, Span{
				Start:    off + v,
				Length:   end - v,
				Category: PlainText,
				Colors:   &ColorPair{Foreground: readableOn(bg), Background: bg},
			})
			i = end - 1
		}
	}
	return spans
}

// parseCSSColor understands rgb()/rgba() triples, #rgb and #rrggbb hex
// values and the SVG colour names.
func parseCSSColor(value string) (colorful.Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "":
		return colorful.Color{}, false
	case strings.HasPrefix(v, "rgb"):
		return parseRGB(v)
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		return c, err == nil
	}
	named, ok := colornames.Map[v]
	if !ok {
		return colorful.Color{}, false
	}
	return colorful.MakeColor(named)
}

func parseRGB(v string) (colorful.Color, bool) {
	open := strings.IndexByte(v, '(')
	closing := strings.LastIndexByte(v, ')')
	if open < 0 || closing < open {
		return colorful.Color{}, false
	}
	parts := strings.Split(v[open+1:closing], ",")
	if len(parts) < 3 {
		return colorful.Color{}, false
	}
	var rgb [3]uint8
	for k := range rgb {
		n, err := strconv.Atoi(strings.TrimSpace(parts[k]))
		if err != nil {
			return colorful.Color{}, false
		}
		rgb[k] = uint8(min(max(n, 0), 255))
	}
	return colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}, true
}

// lightness is the HSL lightness of c on a 0-255 scale.
func lightness(c colorful.Color) int {
	r, g, b := c.RGB255()
	hi := max(r, g, b)
	lo := min(r, g, b)
	return (int(hi) + int(lo)) / 2
}

// readableOn picks a foreground that stays legible over bg.
func readableOn(bg colorful.Color) colorful.Color {
	l := lightness(bg)
	switch {
	case l <= 20:
		return cssWhite
	case l <= 51:
		return cssLightGray
	case l <= 78:
		return cssGray
	case l <= 110:
		return cssDimGray
	case l > 127:
		return darker(bg, l+100)
	default:
		return lighter(bg, l+100)
	}
}

// darker divides the HSV value by factor/100.
func darker(c colorful.Color, factor int) colorful.Color {
	h, s, v := c.Hsv()
	return colorful.Hsv(h, s, v*100/float64(factor)).Clamped()
}

// lighter multiplies the HSV value by factor/100. Overflow past full value is
// taken out of the saturation instead.
func lighter(c colorful.Color, factor int) colorful.Color {
	h, s, v := c.Hsv()
	v = v * float64(factor) / 100
	if v > 1 {
		s = max(s-(v-1), 0)
		v = 1
	}
	return colorful.Hsv(h, s, v).Clamped()
}
