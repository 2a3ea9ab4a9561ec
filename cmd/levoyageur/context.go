package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gitxyzlabs/levoyageur/internal/candidates"
	"github.com/gitxyzlabs/levoyageur/internal/config"
	"github.com/gitxyzlabs/levoyageur/internal/logging"
	"github.com/gitxyzlabs/levoyageur/internal/services/places"
	"github.com/gitxyzlabs/levoyageur/internal/store"
)

type commandContext struct {
	configFlag *string
	userFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, userFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		userFlag:   userFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:    cfg.Logging.Level,
			Format:   cfg.Logging.Format,
			FilePath: cfg.LogFilePath(),
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the store for the duration of one command.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	s, err := store.Open(cfg, c.ensureLogger())
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// userName returns the trimmed --user flag value; empty means anonymous.
func (c *commandContext) userName() string {
	if c.userFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.userFlag)
}

// resolveUserID maps the --user flag to a stored user id. The empty flag
// resolves to the empty id, i.e. the anonymous session.
func (c *commandContext) resolveUserID(ctx context.Context, s *store.Store) (string, error) {
	name := c.userName()
	if name == "" {
		return "", nil
	}
	user, err := s.GetUserByName(ctx, name)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (c *commandContext) newSearcher() (places.Searcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return places.New(cfg.Places.APIKey, cfg.Places.BaseURL,
		places.WithTimeout(time.Duration(cfg.Places.TimeoutSeconds)*time.Second))
}

func (c *commandContext) scoringPolicy() candidates.Policy {
	cfg, err := c.ensureConfig()
	if err != nil {
		return candidates.DefaultPolicy()
	}
	return candidates.Policy{
		NameWeight:          cfg.Matching.NameWeight,
		DistanceWeight:      cfg.Matching.DistanceWeight,
		CategoryWeight:      cfg.Matching.CategoryWeight,
		DistanceDecayMeters: cfg.Matching.DistanceDecayMeters,
		ReviewThreshold:     cfg.Matching.ReviewThreshold,
		AutoApplyThreshold:  cfg.Matching.AutoApplyThreshold,
		MaxCandidates:       cfg.Matching.MaxCandidates,
	}.Normalized()
}
