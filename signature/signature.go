package signature

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"YoDawg/core"
)

const (
	brandEmoji   = "🐶"
	defaultModel = "🤖"
)

const (
	classicTemplate = "— {emoji_brand} {brand} | Sema4.ai • MCP | model: {model}"
	minimalTemplate = "— {brand} • {mode} • {model}"
	emojiTemplate   = "{emoji_brand} {brand} • {emoji_model} {model} • {mode}"
)

var placeholder = regexp.MustCompile(`\{[a-z_]*\}`)

// Build renders the signature appended to comments. An empty string means signatures
// are disabled.
func Build(conf core.SignatureConfig, mode, model string, now time.Time) string {
	if !conf.Enabled {
		return ""
	}
	if mode == "" {
		mode = "unknown"
	}
	if model == "" {
		model = "unknown"
	}
	brand := conf.Brand
	if brand == "" {
		brand = "Yo Dawg Action Server"
	}

	tpl := conf.Template
	if tpl == "" {
		tpl = styleTemplate(conf.Style)
	}

	now = now.UTC()
	hashtags := strings.TrimSpace(conf.Hashtags)
	url := strings.TrimSpace(conf.URL)
	replacer := strings.NewReplacer(
		"{mode}", mode,
		"{model}", model,
		"{brand}", brand,
		"{url}", url,
		"{timestamp}", now.Format("2006-01-02T15:04:05")+"Z",
		"{date}", now.Format("2006-01-02"),
		"{time}", now.Format("15:04:05")+"Z",
		"{emoji_brand}", brandEmoji,
		"{emoji_model}", ModelEmoji(model),
		"{hashtags}", hashtags,
	)

	body := strings.TrimSpace(replacer.Replace(tpl))
	for _, p := range placeholder.FindAllString(tpl, -1) {
		if !isKnown(p) {
			body = "— " + brand + " • mode: " + mode + " • model: " + model
			break
		}
	}

	parts := []string{body}
	if url != "" {
		parts = append(parts, url)
	}
	if hashtags != "" {
		parts = append(parts, hashtags)
	}

	sig := strings.Join(parts, " | ")
	if conf.PrefixNewline {
		sig = "\n" + sig
	}

	maxLength := conf.MaxLength
	if maxLength <= 0 {
		maxLength = 280
	}
	if utf8.RuneCountInString(sig) > maxLength {
		sig = string([]rune(sig)[:maxLength-1]) + "…"
	}
	return sig
}

func styleTemplate(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "minimal":
		return minimalTemplate
	case "emoji":
		return emojiTemplate
	default:
		return classicTemplate
	}
}

func isKnown(p string) bool {
	switch p {
	case "{mode}", "{model}", "{brand}", "{url}", "{timestamp}", "{date}", "{time}",
		"{emoji_brand}", "{emoji_model}", "{hashtags}":
		return true
	}
	return false
}

// ModelEmoji picks an emoji for the model family.
func ModelEmoji(model string) string {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "llama"):
		return "🦙"
	case strings.Contains(m, "gpt"):
		return "🧠"
	case strings.Contains(m, "claude"):
		return "🤖"
	case strings.Contains(m, "gemma"):
		return "✨"
	}
	return defaultModel
}
