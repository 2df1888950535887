package scene

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a fill or stroke attribute into a non-premultiplied color. It
// accepts color.Color values, SVG color names ("red"), "transparent",
// hex forms (#rgb, #rrggbb, #rrggbbaa) and rgb()/rgba() functions. The
// second result is false for unset or unparseable values.
func ParseColor(v any) (color.NRGBA, bool) {
	switch c := v.(type) {
	case nil:
		return color.NRGBA{}, false
	case color.NRGBA:
		return c, true
	case color.Color:
		return color.NRGBAModel.Convert(c).(color.NRGBA), true
	case string:
		return parseColorString(c)
	}
	return color.NRGBA{}, false
}

func parseColorString(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, false
	case s == "transparent":
		return color.NRGBA{}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[4:len(s)-1], false)
	}
	c, ok := colornames.Map[s]
	return color.NRGBA{c.R, c.G, c.B, c.A}, ok
}

func parseHex(h string) (color.NRGBA, bool) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(h) == 6 {
		return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, true
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

func parseRGBFunc(args string, withAlpha bool) (color.NRGBA, bool) {
	parts := strings.Split(args, ",")
	if (withAlpha && len(parts) != 4) || (!withAlpha && len(parts) != 3) {
		return color.NRGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, false
		}
		ch[i] = uint8(v)
	}
	a := uint8(0xff)
	if withAlpha {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || f < 0 || f > 1 {
			return color.NRGBA{}, false
		}
		a = uint8(f*255 + 0.5)
	}
	return color.NRGBA{ch[0], ch[1], ch[2], a}, true
}
