package core

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env           string        `yaml:"env" env:"YODAWG_ENV" env-default:"local"`
	Model         string        `yaml:"model" env:"YODAWG_MODEL" env-default:"ollama:gemma3:latest"`
	ImageModel    string        `yaml:"image_model" env:"YODAWG_IMAGE_MODEL" env-default:"gpt-4.1"`
	OpenAIApiKey  string        `yaml:"openai_api_key" env:"OPENAI_API_KEY" env-default:""`
	OpenAIBaseURL string        `yaml:"openai_base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	OllamaBaseURL string        `yaml:"ollama_base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434/v1"`
	HTTPTimeout   time.Duration `yaml:"http_timeout" env:"YODAWG_HTTP_TIMEOUT" env-default:"120s"`
	OutputDir     string        `yaml:"output_dir" env:"YODAWG_OUTPUT_DIR" env-default:"yo-dawg-images"`
	Caption       struct {
		MaxLength int  `yaml:"max_length" env:"CAPTION_MAX_LENGTH" env-default:"80"`
		Truncate  bool `yaml:"truncate" env:"CAPTION_TRUNCATE" env-default:"true"`
	} `yaml:"caption"`
	Overlay struct {
		Template string `yaml:"template" env:"OVERLAY_TEMPLATE" env-default:"templates/GtGTtP_WIAAHKqP.jpg"`
		Font     string `yaml:"font" env:"OVERLAY_FONT" env-default:""`
		FontDir  string `yaml:"font_dir" env:"OVERLAY_FONT_DIR" env-default:"fonts"`
	} `yaml:"overlay"`
	Telegram struct {
		ApiKey string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"yodawg"`
	} `yaml:"mongo"`
	Signature SignatureConfig `yaml:"signature"`
}

type SignatureConfig struct {
	Enabled       bool   `yaml:"enabled" env:"SIGNATURE_ENABLED" env-default:"true"`
	Template      string `yaml:"template" env:"SIGNATURE_TEMPLATE" env-default:""`
	Style         string `yaml:"style" env:"SIGNATURE_STYLE" env-default:"classic"`
	Brand         string `yaml:"brand" env:"SIGNATURE_BRAND" env-default:"Yo Dawg Action Server"`
	URL           string `yaml:"url" env:"SIGNATURE_URL" env-default:""`
	Hashtags      string `yaml:"hashtags" env:"SIGNATURE_HASHTAGS" env-default:""`
	PrefixNewline bool   `yaml:"prefix_newline" env:"SIGNATURE_PREFIX_NEWLINE" env-default:"true"`
	MaxLength     int    `yaml:"max_length" env:"SIGNATURE_MAX_LENGTH" env-default:"280"`
}

// Load reads the YAML file at path with environment overrides. A missing file is not an error:
// the configuration then comes from the environment and defaults alone.
// Variables from .env.local and .env are loaded first; already set variables win.
func Load(path string) (*Config, error) {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	conf := &Config{}
	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, conf)
	} else {
		err = cleanenv.ReadEnv(conf)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("config: %s; %s", err, desc)
	}
	if conf.Caption.MaxLength < 2 {
		return nil, fmt.Errorf("%w: caption max_length must be at least 2, got %d", ErrConfiguration, conf.Caption.MaxLength)
	}
	return conf, nil
}
