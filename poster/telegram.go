package poster

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"YoDawg/core"
	"YoDawg/lib/sl"
)

const platformTelegram = "telegram"

// Target is a resolved Telegram post reference.
type Target struct {
	ChatID          int64
	ChannelUsername string
	MessageID       int
	// PageURL is the public embed page of the post, empty for private chats.
	PageURL string
}

// ParseTarget accepts "https://t.me/<channel>/<id>", "https://t.me/c/<chat>/<id>"
// and "<chatID>:<messageID>".
func ParseTarget(ref string) (Target, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Target{}, fmt.Errorf("%w: empty post reference", core.ErrInvalidInput)
	}

	if chat, msg, found := strings.Cut(ref, ":"); found && !strings.Contains(ref, "/") {
		chatID, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			return Target{}, fmt.Errorf("%w: chat id %q: %v", core.ErrInvalidInput, chat, err)
		}
		messageID, err := strconv.Atoi(msg)
		if err != nil {
			return Target{}, fmt.Errorf("%w: message id %q: %v", core.ErrInvalidInput, msg, err)
		}
		return Target{ChatID: chatID, MessageID: messageID}, nil
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Host != "t.me" && u.Host != "telegram.me") {
		return Target{}, fmt.Errorf("%w: not a telegram post: %q", core.ErrInvalidInput, ref)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case len(parts) == 3 && parts[0] == "c":
		internal, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Target{}, fmt.Errorf("%w: chat id %q: %v", core.ErrInvalidInput, parts[1], err)
		}
		messageID, err := strconv.Atoi(parts[2])
		if err != nil {
			return Target{}, fmt.Errorf("%w: message id %q: %v", core.ErrInvalidInput, parts[2], err)
		}
		// private supergroups and channels are addressed as -100<internal id>
		chatID, _ := strconv.ParseInt("-100"+strconv.FormatInt(internal, 10), 10, 64)
		return Target{ChatID: chatID, MessageID: messageID}, nil
	case len(parts) == 2:
		messageID, err := strconv.Atoi(parts[1])
		if err != nil {
			return Target{}, fmt.Errorf("%w: message id %q: %v", core.ErrInvalidInput, parts[1], err)
		}
		return Target{
			ChannelUsername: "@" + parts[0],
			MessageID:       messageID,
			PageURL:         fmt.Sprintf("https://t.me/%s/%d?embed=1", parts[0], messageID),
		}, nil
	}
	return Target{}, fmt.Errorf("%w: not a telegram post: %q", core.ErrInvalidInput, ref)
}

func (t Target) baseChat() tgbotapi.BaseChat {
	return tgbotapi.BaseChat{
		ChatID:           t.ChatID,
		ChannelUsername:  t.ChannelUsername,
		ReplyToMessageID: t.MessageID,
	}
}

// TelegramPoster replies to channel or group posts through a bot.
type TelegramPoster struct {
	api       *tgbotapi.BotAPI
	extractor *Extractor
	log       *slog.Logger
}

func NewTelegram(extractor *Extractor, log *slog.Logger) *TelegramPoster {
	return &TelegramPoster{
		extractor: extractor,
		log:       log.With(sl.Module("telegram")),
	}
}

func (t *TelegramPoster) Platform() string {
	return platformTelegram
}

func (t *TelegramPoster) Login(_ context.Context, creds core.Credentials) error {
	if creds.Token == "" {
		return fmt.Errorf("%w: telegram api key is not set", core.ErrConfiguration)
	}
	api, err := tgbotapi.NewBotAPI(creds.Token)
	if err != nil {
		t.log.With(sl.Secret(creds.Token)).Error("telegram login", sl.Err(err))
		return fmt.Errorf("telegram login: %w", err)
	}
	t.api = api
	t.log.With(slog.String("bot", api.Self.UserName)).Info("logged in")
	return nil
}

// FetchPostText reads public posts from their embed page. Anything else yields Placeholder.
func (t *TelegramPoster) FetchPostText(ctx context.Context, postRef string) string {
	target, err := ParseTarget(postRef)
	if err != nil {
		// not a telegram link, the page may still be readable
		return t.extractor.FetchPostText(ctx, postRef)
	}
	if target.PageURL == "" {
		return Placeholder
	}
	return t.extractor.FetchPostText(ctx, target.PageURL)
}

// SubmitComment replies to the post with the image and the text as its caption, or
// with the text alone when there is no image.
func (t *TelegramPoster) SubmitComment(_ context.Context, postRef, text, imagePath string) (*core.Outcome, error) {
	if t.api == nil {
		return nil, fmt.Errorf("telegram: not logged in")
	}
	target, err := ParseTarget(postRef)
	if err != nil {
		return nil, err
	}

	var chattable tgbotapi.Chattable
	if imagePath != "" {
		if _, statErr := os.Stat(imagePath); statErr == nil {
			photo := tgbotapi.NewPhotoUpload(target.ChatID, imagePath)
			photo.BaseChat = target.baseChat()
			photo.Caption = text
			chattable = photo
		} else {
			t.log.With(slog.String("image", imagePath)).Warn("image not found, posting text only")
			imagePath = ""
		}
	}
	if chattable == nil {
		msg := tgbotapi.NewMessage(target.ChatID, text)
		msg.BaseChat = target.baseChat()
		chattable = msg
	}

	sent, err := t.api.Send(chattable)
	if err != nil {
		return nil, fmt.Errorf("telegram send: %w", err)
	}

	outcome := &core.Outcome{
		Target:    postRef,
		ImagePath: imagePath,
		MessageID: sent.MessageID,
		Message:   fmt.Sprintf("Commented on post: %s", postRef),
	}
	if imagePath != "" {
		outcome.Message += fmt.Sprintf(" with image: %s", imagePath)
	}
	t.log.With(
		slog.String("target", postRef),
		slog.Int("message", sent.MessageID),
	).Info("comment submitted")
	return outcome, nil
}
