package sl

import (
	"log/slog"
	"unicode/utf8"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret keeps the first 5 characters of a credential so logs can tell keys apart
// without leaking them
func Secret(some string) slog.Attr {
	r := "***"
	if utf8.RuneCountInString(some) > 5 {
		r = string([]rune(some)[:5]) + "***"
	}
	if some == "" {
		r = "?"
	}
	return slog.Attr{
		Key:   "secret",
		Value: slog.StringValue(r),
	}
}

func Module(mod string) slog.Attr {
	return slog.Attr{
		Key:   "mod",
		Value: slog.StringValue(mod),
	}
}

// Caption groups both meme lines under one key.
func Caption(top, bottom string) slog.Attr {
	return slog.Group("caption",
		slog.String("top", top),
		slog.String("bottom", bottom),
	)
}

// Short trims long text for log lines.
func Short(key, text string) slog.Attr {
	if utf8.RuneCountInString(text) > 50 {
		text = string([]rune(text)[:50]) + "..."
	}
	return slog.String(key, text)
}
