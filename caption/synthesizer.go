package caption

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"YoDawg/core"
	"YoDawg/lib/sl"
)

const DefaultMaxLength = 80

type Options struct {
	// MaxLength is the per-line ceiling in characters.
	MaxLength int
	// Truncate enforces MaxLength on the parsed caption.
	Truncate bool
}

func DefaultOptions() Options {
	return Options{MaxLength: DefaultMaxLength, Truncate: true}
}

// Synthesizer asks a completion service for a two-line caption and validates the reply.
type Synthesizer struct {
	completion core.CompletionService
	opts       Options
	log        *slog.Logger
}

func NewSynthesizer(completion core.CompletionService, opts Options, log *slog.Logger) *Synthesizer {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	return &Synthesizer{
		completion: completion,
		opts:       opts,
		log:        log.With(sl.Module("caption")),
	}
}

// Synthesize makes exactly one completion call. Failures are not retried.
func (s *Synthesizer) Synthesize(ctx context.Context, source string) (core.Caption, error) {
	if strings.TrimSpace(source) == "" {
		return core.Caption{}, fmt.Errorf("%w: no content provided for meme caption generation", core.ErrInvalidInput)
	}

	reply, err := s.completion.Complete(ctx, BuildPrompt(source))
	if err != nil {
		return core.Caption{}, fmt.Errorf("caption completion: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return core.Caption{}, fmt.Errorf("%w: empty caption reply", core.ErrGenerationFailed)
	}

	caption := Parse(reply)
	if caption.IsEmpty() {
		return core.Caption{}, fmt.Errorf("%w: no caption in reply %q", core.ErrGenerationFailed, reply)
	}
	if s.opts.Truncate {
		caption = Truncate(caption, s.opts.MaxLength)
	}

	s.log.With(
		sl.Short("source", source),
		sl.Caption(caption.Top, caption.Bottom),
	).Info("caption synthesized")
	return caption, nil
}
