package caption

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"YoDawg/core"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  core.Caption
	}{
		{
			name:  "delimiter",
			reply: "YO DAWG X|||Y",
			want:  core.Caption{Top: "YO DAWG X", Bottom: "Y"},
		},
		{
			name:  "no delimiter",
			reply: "YO DAWG X\nY",
			want:  core.Caption{Top: "YO DAWG X", Bottom: "Y"},
		},
		{
			name:  "think block stripped",
			reply: "<think>anything</think>YO DAWG X|||Y",
			want:  core.Caption{Top: "YO DAWG X", Bottom: "Y"},
		},
		{
			name:  "multiline think block",
			reply: "<think>\nfirst | idea\n|||\n</think>\nYO DAWG X ||| Y",
			want:  core.Caption{Top: "YO DAWG X", Bottom: "Y"},
		},
		{
			name:  "split on first delimiter only",
			reply: "YO DAWG A|||B|||C",
			want:  core.Caption{Top: "YO DAWG A", Bottom: "B C"},
		},
		{
			name:  "opening phrase found later, case insensitive",
			reply: "Sure, here it is:\n\nyo dawg, I heard you like tests\nso I tested your tests",
			want:  core.Caption{Top: "yo dawg, I heard you like tests", Bottom: "Sure, here it is:"},
		},
		{
			name:  "no opening phrase uses first line",
			reply: "first\nsecond",
			want:  core.Caption{Top: "first", Bottom: "second"},
		},
		{
			name:  "single segment",
			reply: "YO DAWG only one line",
			want:  core.Caption{Top: "YO DAWG only one line", Bottom: ""},
		},
		{
			name:  "identical lines leave bottom empty",
			reply: "YO DAWG same\nYO DAWG same",
			want:  core.Caption{Top: "YO DAWG same", Bottom: ""},
		},
		{
			name:  "empty",
			reply: "   ",
			want:  core.Caption{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.reply))
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 90)

	got := Truncate(core.Caption{Top: "YO DAWG", Bottom: long}, 80)

	assert.Equal(t, "YO DAWG", got.Top)
	assert.Equal(t, strings.Repeat("a", 79)+"…", got.Bottom)
	assert.Equal(t, 80, utf8.RuneCountInString(got.Bottom))
}

func TestTruncate_BothSegments(t *testing.T) {
	got := Truncate(core.Caption{Top: strings.Repeat("t", 81), Bottom: strings.Repeat("b", 100)}, 80)

	assert.Equal(t, strings.Repeat("t", 79)+"…", got.Top)
	assert.Equal(t, strings.Repeat("b", 79)+"…", got.Bottom)
}

func TestTruncate_WithinBound(t *testing.T) {
	c := core.Caption{Top: strings.Repeat("t", 80), Bottom: "short"}

	assert.Equal(t, c, Truncate(c, 80))
}

func TestTruncate_CountsRunes(t *testing.T) {
	c := core.Caption{Top: strings.Repeat("ü", 80), Bottom: "ok"}

	assert.Equal(t, c, Truncate(c, 80))
}
