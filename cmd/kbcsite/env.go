package main

import (
	stderrors "errors"
	"io"
	"log/slog"

	"github.com/kbc-construction/site/internal/config"
	"github.com/kbc-construction/site/internal/errors"
	"github.com/kbc-construction/site/internal/logging"
	"github.com/kbc-construction/site/pkg/publish"
	"github.com/kbc-construction/site/pkg/site"
)

// env is what every command needs before it does any work.
type env struct {
	cfg     *config.Config
	content *site.Content
	logger  *slog.Logger
	closer  io.Closer
}

func (e *env) Close() error {
	return e.closer.Close()
}

// setup loads and validates the config, opens the logger and loads the
// content.
func setup(configPath string, stderr io.Writer) (*env, error) {
	cfg, err := config.Load("", configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := logging.Setup(cfg.LoggingOptions(), stderr)
	if err != nil {
		return nil, errors.New("KBC001").
			WithDetail("Could not open the log file.").
			WithSuggestion("Check logging.file or leave it empty to log to stderr.").
			Wrap(err)
	}

	content, err := loadContent(cfg.Content.Path)
	if err != nil {
		closer.Close()
		return nil, err
	}

	return &env{cfg: cfg, content: content, logger: logger, closer: closer}, nil
}

// loadContent loads the content file, mapping failures onto coded errors.
func loadContent(path string) (*site.Content, error) {
	c, err := site.Load(path)
	if err == nil {
		return c, nil
	}
	if !stderrors.Is(err, site.ErrInvalidContent) {
		se := errors.New("KBC011").Wrap(err)
		if path != "" {
			se.Location = &errors.Location{File: path}
		}
		return nil, se
	}
	se := errors.New("KBC010").Wrap(err)
	if path != "" {
		se = se.WithLocationFromYAML(path, err)
	}
	return nil, se
}

// publishError maps a publisher failure onto a coded error.
func publishError(err error, fallback string) error {
	switch {
	case stderrors.Is(err, publish.ErrMissingAsset):
		return errors.New("KBC030").Wrap(err)
	case stderrors.Is(err, publish.ErrNoCredentials):
		return errors.New("KBC032").Wrap(err)
	default:
		return errors.FromError(err, fallback)
	}
}
