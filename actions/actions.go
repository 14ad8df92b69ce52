package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"YoDawg/ai"
	"YoDawg/caption"
	"YoDawg/core"
	"YoDawg/lib/sl"
	"YoDawg/meme"
	"YoDawg/signature"
	"YoDawg/storage"
)

// Result is a produced meme.
type Result struct {
	Caption   core.Caption `json:"caption"`
	ImagePath string       `json:"image_filename"`
}

// Backends builds the AI client for a model selector; empty selects the configured default.
type Backends interface {
	Completion(model string) (core.CompletionService, string, error)
	Images() (core.ImageService, string, error)
}

type Service struct {
	conf       *core.Config
	backends   Backends
	compositor *meme.Compositor
	poster     core.Poster
	records    storage.RecordStorage
	log        *slog.Logger
	rootLog    *slog.Logger
	now        func() time.Time
	loggedIn   bool
}

func NewService(
	conf *core.Config,
	backends Backends,
	compositor *meme.Compositor,
	poster core.Poster,
	records storage.RecordStorage,
	log *slog.Logger,
) *Service {
	return &Service{
		conf:       conf,
		backends:   backends,
		compositor: compositor,
		poster:     poster,
		records:    records,
		log:        log.With(sl.Module("actions")),
		rootLog:    log,
		now:        time.Now,
	}
}

// Quote generates only the caption.
func (s *Service) Quote(ctx context.Context, content, model string) (core.Caption, error) {
	if strings.TrimSpace(content) == "" {
		return core.Caption{}, fmt.Errorf("%w: no content provided for meme caption generation", core.ErrInvalidInput)
	}
	c, modelName, err := s.synthesize(ctx, content, model)
	if err != nil {
		return core.Caption{}, err
	}
	s.record(&storage.MemeRecord{Mode: storage.ModeQuote, Model: modelName, Source: content, Top: c.Top, Bottom: c.Bottom})
	return c, nil
}

// StaticMeme overlays a generated caption on templatePath. An empty outputPath
// writes into the output directory.
func (s *Service) StaticMeme(ctx context.Context, content, templatePath, outputPath, model string) (*Result, error) {
	result, record, err := s.staticMeme(ctx, content, templatePath, outputPath, model)
	if err != nil {
		return nil, err
	}
	s.record(record)
	return result, nil
}

// GeneratedMeme asks the image service for a meme. When the service returns no image the
// result carries the caption and an empty ImagePath.
func (s *Service) GeneratedMeme(ctx context.Context, content, model string) (*Result, error) {
	result, record, err := s.generatedMeme(ctx, content, model)
	if err != nil {
		return nil, err
	}
	s.record(record)
	return result, nil
}

func (s *Service) staticMeme(ctx context.Context, content, templatePath, outputPath, model string) (*Result, *storage.MemeRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, fmt.Errorf("%w: no content provided for meme caption generation", core.ErrInvalidInput)
	}
	if templatePath == "" {
		templatePath = s.conf.Overlay.Template
	}
	if _, err := os.Stat(templatePath); templatePath == "" || err != nil {
		return nil, nil, fmt.Errorf("%w: static image not found: %s", core.ErrInputNotFound, templatePath)
	}

	c, modelName, err := s.synthesize(ctx, content, model)
	if err != nil {
		return nil, nil, err
	}

	if outputPath == "" {
		if outputPath, err = s.outputPath("yo_dawg_static"); err != nil {
			return nil, nil, err
		}
	}
	if err := s.compositor.Overlay(c, templatePath, outputPath, s.conf.Overlay.Font); err != nil {
		return nil, nil, err
	}

	record := &storage.MemeRecord{Mode: storage.ModeStatic, Model: modelName, Source: content, Top: c.Top, Bottom: c.Bottom, ImagePath: outputPath}
	return &Result{Caption: c, ImagePath: outputPath}, record, nil
}

func (s *Service) generatedMeme(ctx context.Context, content, model string) (*Result, *storage.MemeRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, fmt.Errorf("%w: no content provided for meme generation", core.ErrInvalidInput)
	}

	c, modelName, err := s.synthesize(ctx, content, model)
	if err != nil {
		return nil, nil, err
	}
	record := &storage.MemeRecord{Mode: storage.ModeGenerated, Model: modelName, Source: content, Top: c.Top, Bottom: c.Bottom}

	images, imageModel, err := s.backends.Images()
	if err != nil {
		return nil, nil, err
	}
	data, err := s.compositor.Synthesize(ctx, c, images)
	if errors.Is(err, core.ErrGenerationFailed) {
		s.log.With(slog.String("image_model", imageModel)).Warn("no image generated", sl.Err(err))
		return &Result{Caption: c}, record, nil
	}
	if err != nil {
		return nil, nil, err
	}

	outputPath, err := s.outputPath("yo_dawg_image")
	if err != nil {
		return nil, nil, err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return nil, nil, fmt.Errorf("saving image: %w", err)
	}
	s.log.With(slog.String("path", outputPath)).Info("image saved")

	record.ImagePath = outputPath
	return &Result{Caption: c, ImagePath: outputPath}, record, nil
}

func (s *Service) synthesize(ctx context.Context, content, model string) (core.Caption, string, error) {
	completion, modelName, err := s.backends.Completion(model)
	if err != nil {
		return core.Caption{}, "", err
	}
	opts := caption.Options{MaxLength: s.conf.Caption.MaxLength, Truncate: s.conf.Caption.Truncate}
	c, err := caption.NewSynthesizer(completion, opts, s.rootLog).Synthesize(ctx, content)
	if err != nil {
		return core.Caption{}, "", fmt.Errorf("failed to generate Yo Dawg caption: %w", err)
	}
	return c, modelName, nil
}

// outputPath creates the output directory and names a file after the current time
// in nanoseconds.
func (s *Service) outputPath(prefix string) (string, error) {
	dir := s.conf.OutputDir
	if dir == "" {
		dir = "yo-dawg-images"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%d.png", prefix, s.now().UnixNano())), nil
}

func (s *Service) record(record *storage.MemeRecord) {
	if s.records == nil || record == nil {
		return
	}
	if err := s.records.SaveRecord(record); err != nil {
		s.log.With(slog.String("mode", record.Mode)).Error("saving meme record", sl.Err(err))
	}
}

// Recent lists the latest produced memes.
func (s *Service) Recent(limit int) ([]storage.MemeRecord, error) {
	if s.records == nil {
		return nil, nil
	}
	return s.records.RecentRecords(limit)
}

// signatureFor renders the comment signature.
func (s *Service) signatureFor(mode, model string) string {
	return signature.Build(s.conf.Signature, mode, model, s.now())
}

// ClientBackends resolves model selectors into HTTP clients.
type ClientBackends struct {
	conf *core.Config
	log  *slog.Logger
}

func NewClientBackends(conf *core.Config, log *slog.Logger) *ClientBackends {
	return &ClientBackends{conf: conf, log: log}
}

func (b *ClientBackends) Completion(model string) (core.CompletionService, string, error) {
	backend, err := ai.ParseBackend(model, b.conf.Model, b.conf)
	if err != nil {
		return nil, "", err
	}
	return ai.NewClient(backend, b.conf.HTTPTimeout, b.log), backend.Model, nil
}

func (b *ClientBackends) Images() (core.ImageService, string, error) {
	backend, err := ai.ParseBackend(b.conf.ImageModel, "", b.conf)
	if err != nil {
		return nil, "", err
	}
	return ai.NewClient(backend, b.conf.HTTPTimeout, b.log), backend.Model, nil
}
