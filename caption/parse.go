package caption

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"YoDawg/core"
)

const ellipsis = "…"

var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThink removes reasoning blocks some backends prepend to their answer.
func StripThink(reply string) string {
	if !strings.Contains(reply, "<think>") {
		return reply
	}
	return thinkBlock.ReplaceAllString(reply, "")
}

// Parse turns a raw model reply into a caption.
//
// With a delimiter the reply is split on its first occurrence. Without one, the first
// line starting with the opening phrase (or the first line) becomes the top and the
// first line different from it the bottom.
func Parse(reply string) core.Caption {
	cleaned := StripThink(reply)

	if top, bottom, found := strings.Cut(cleaned, core.CaptionDelimiter); found {
		return core.Caption{
			Top:    strings.TrimSpace(top),
			Bottom: strings.TrimSpace(strings.ReplaceAll(bottom, core.CaptionDelimiter, " ")),
		}
	}

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return core.Caption{}
	}

	top := lines[0]
	for _, line := range lines {
		if strings.HasPrefix(strings.ToUpper(line), core.OpeningPhrase) {
			top = line
			break
		}
	}
	bottom := ""
	for _, line := range lines {
		if line != top {
			bottom = line
			break
		}
	}
	return core.Caption{Top: top, Bottom: bottom}
}

// Truncate cuts every segment longer than maxLen runes down to maxLen-1 runes plus an
// ellipsis. The shortened caption is serialized and parsed again.
func Truncate(c core.Caption, maxLen int) core.Caption {
	if maxLen < 2 || (utf8.RuneCountInString(c.Top) <= maxLen && utf8.RuneCountInString(c.Bottom) <= maxLen) {
		return c
	}
	serialized := shorten(c.Top, maxLen) + core.CaptionDelimiter + shorten(c.Bottom, maxLen)
	top, bottom, _ := strings.Cut(serialized, core.CaptionDelimiter)
	return core.Caption{Top: top, Bottom: bottom}
}

func shorten(line string, maxLen int) string {
	if utf8.RuneCountInString(line) <= maxLen {
		return line
	}
	return string([]rune(line)[:maxLen-1]) + ellipsis
}
