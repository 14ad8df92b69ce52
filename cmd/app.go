package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"YoDawg/actions"
	"YoDawg/core"
	"YoDawg/lib/sl"
	"YoDawg/meme"
	"YoDawg/poster"
	"YoDawg/storage"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type app struct {
	conf    *core.Config
	log     *slog.Logger
	records storage.RecordStorage
	service *actions.Service
}

func newApp(configPath string) (*app, error) {
	conf, err := core.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := setupLogger(conf.Env)
	log.With(
		slog.String("config", configPath),
		slog.String("env", conf.Env),
		slog.String("model", conf.Model),
		slog.String("image_model", conf.ImageModel),
	).Debug("starting yo dawg")

	records := openRecords(conf, log)
	compositor := meme.NewCompositor(conf.Overlay.FontDir, log)
	telegram := poster.NewTelegram(poster.NewExtractor(conf.HTTPTimeout, log), log)
	service := actions.NewService(conf, actions.NewClientBackends(conf, log), compositor, telegram, records, log)

	return &app{
		conf:    conf,
		log:     log,
		records: records,
		service: service,
	}, nil
}

func (a *app) Close() {
	if a.records == nil {
		return
	}
	if err := a.records.Close(); err != nil {
		a.log.Error("closing record storage", sl.Err(err))
	}
}

func openRecords(conf *core.Config, log *slog.Logger) storage.RecordStorage {
	if !conf.Mongo.Enabled {
		log.Debug("using in-memory storage")
		return storage.NewMemoryStorage()
	}

	mongoURI := fmt.Sprintf("mongodb://%s:%s@%s:%s",
		conf.Mongo.User, conf.Mongo.Password,
		conf.Mongo.Host, conf.Mongo.Port)
	store, err := storage.NewMongoStorage(mongoURI, conf.Mongo.Database, log)
	if err != nil {
		log.With(
			slog.String("db", conf.Mongo.Database),
			slog.String("user", conf.Mongo.User),
			slog.String("host", conf.Mongo.Host),
		).Error("falling back to memory", sl.Err(err))
		return storage.NewMemoryStorage()
	}
	log.Debug("using MongoDB storage")
	return store
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal, envDev:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
