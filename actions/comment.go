package actions

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"YoDawg/core"
	"YoDawg/storage"
)

// CommentRequest selects what the meme is made of and where it goes.
//
// Exactly one source of context is allowed: the post (PostRef), a custom text
// (CustomContext), or both with AppendCustomContext. ImagePath skips meme generation
// and posts an existing image.
type CommentRequest struct {
	PostRef             string
	CustomContext       string
	AppendCustomContext bool
	// Mode is storage.ModeGenerated or storage.ModeStatic.
	Mode      string
	Model     string
	ImagePath string
}

type CommentResult struct {
	Meme    *Result       `json:"meme,omitempty"`
	Outcome *core.Outcome `json:"outcome,omitempty"`
	Message string        `json:"result"`
}

func (r CommentRequest) validate() error {
	hasPost := strings.TrimSpace(r.PostRef) != ""
	hasCustom := strings.TrimSpace(r.CustomContext) != ""

	if r.ImagePath != "" {
		if !hasPost {
			return fmt.Errorf("%w: post reference must be provided when using an image path", core.ErrInvalidInput)
		}
		if _, err := os.Stat(r.ImagePath); err != nil {
			return fmt.Errorf("%w: image not found at specified path: %s", core.ErrInputNotFound, r.ImagePath)
		}
		return nil
	}

	switch {
	case r.AppendCustomContext && (!hasPost || !hasCustom):
		return fmt.Errorf("%w: both post reference and custom context must be provided when appending custom context", core.ErrInvalidInput)
	case r.AppendCustomContext:
	case hasPost && hasCustom:
		return fmt.Errorf("%w: to append custom context enable appending, otherwise provide only one of post reference and custom context", core.ErrInvalidInput)
	case !hasPost && !hasCustom:
		return fmt.Errorf("%w: provide a post reference, a custom context, or both with appending enabled", core.ErrInvalidInput)
	}

	switch r.Mode {
	case storage.ModeGenerated, storage.ModeStatic:
	default:
		return fmt.Errorf("%w: unknown meme mode %q", core.ErrInvalidInput, r.Mode)
	}
	return nil
}

// Comment builds a meme from the request and posts it with the signature as comment text.
// Without a post reference the meme is only generated.
func (s *Service) Comment(ctx context.Context, req CommentRequest) (*CommentResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	if req.PostRef != "" {
		if err := s.Login(ctx); err != nil {
			return nil, err
		}
	}

	mode := req.Mode
	var result *Result
	var record *storage.MemeRecord
	imagePath := req.ImagePath

	if imagePath == "" {
		memeContext := strings.TrimSpace(req.CustomContext)
		if req.PostRef != "" {
			postText := s.poster.FetchPostText(ctx, req.PostRef)
			if req.AppendCustomContext {
				memeContext = postText + "\n\n" + req.CustomContext
			} else {
				memeContext = postText
			}
		}
		if strings.TrimSpace(memeContext) == "" {
			return nil, fmt.Errorf("%w: no context available for meme generation", core.ErrInvalidInput)
		}

		var err error
		if mode == storage.ModeGenerated {
			result, record, err = s.generatedMeme(ctx, memeContext, req.Model)
		} else {
			result, record, err = s.staticMeme(ctx, memeContext, "", "", req.Model)
		}
		if err != nil {
			return nil, err
		}
		imagePath = result.ImagePath
	}

	model := req.Model
	if model == "" {
		model = s.conf.Model
	}

	if req.PostRef == "" {
		s.record(record)
		message := "Generated Yo Dawg meme with custom context only."
		if imagePath != "" {
			message += fmt.Sprintf(" Image: %s", imagePath)
		}
		return &CommentResult{Meme: result, Message: message}, nil
	}

	outcome, err := s.poster.SubmitComment(ctx, req.PostRef, s.signatureFor(mode, model), imagePath)
	if err != nil {
		s.record(record)
		return nil, fmt.Errorf("submitting comment: %w", err)
	}

	if record != nil {
		record.Target = req.PostRef
		record.Posted = true
		s.record(record)
	}

	message := outcome.Message
	if result != nil {
		message += " (Generated Yo Dawg meme)"
	}
	s.log.With(
		slog.String("target", req.PostRef),
		slog.String("platform", s.poster.Platform()),
	).Info("meme comment posted")
	return &CommentResult{Meme: result, Outcome: outcome, Message: message}, nil
}

// Login signs the poster in with the configured credentials; later calls are no-ops.
func (s *Service) Login(ctx context.Context) error {
	if s.loggedIn {
		return nil
	}
	if s.poster == nil {
		return fmt.Errorf("%w: no poster configured", core.ErrConfiguration)
	}
	if err := s.poster.Login(ctx, core.Credentials{Token: s.conf.Telegram.ApiKey}); err != nil {
		return err
	}
	s.loggedIn = true
	return nil
}
