package poster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YoDawg/core"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		ref  string
		want Target
	}{
		{
			ref:  "https://t.me/yodawgchannel/42",
			want: Target{ChannelUsername: "@yodawgchannel", MessageID: 42, PageURL: "https://t.me/yodawgchannel/42?embed=1"},
		},
		{
			ref:  "https://t.me/c/1234567/8",
			want: Target{ChatID: -1001234567, MessageID: 8},
		},
		{
			ref:  "-100987:15",
			want: Target{ChatID: -100987, MessageID: 15},
		},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseTarget(tt.ref)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTarget_Invalid(t *testing.T) {
	for _, ref := range []string{"", "https://example.com/post/1", "https://t.me/channel", "https://t.me/channel/abc", "x:1"} {
		_, err := ParseTarget(ref)

		assert.ErrorIs(t, err, core.ErrInvalidInput, "ref %q", ref)
	}
}

func TestTelegramPoster_LoginRequiresToken(t *testing.T) {
	p := NewTelegram(NewExtractor(0, discardLogger()), discardLogger())

	err := p.Login(context.Background(), core.Credentials{})

	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestTelegramPoster_SubmitRequiresLogin(t *testing.T) {
	p := NewTelegram(NewExtractor(0, discardLogger()), discardLogger())

	_, err := p.SubmitComment(context.Background(), "https://t.me/channel/1", "text", "")

	assert.Error(t, err)
}

func TestTelegramPoster_PrivateChatHasNoPageText(t *testing.T) {
	p := NewTelegram(NewExtractor(0, discardLogger()), discardLogger())

	assert.Equal(t, Placeholder, p.FetchPostText(context.Background(), "-100987:15"))
}
