// Package container provides dependency injection for the finanai application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/categorizer"
	"fjacquet/finanai/internal/coach"
	"fjacquet/finanai/internal/config"
	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dashboard"
	"fjacquet/finanai/internal/importer"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/report"
	"fjacquet/finanai/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.Store
	categorizer *categorizer.Categorizer
	importer    *importer.CAMTImporter
	coach       *coach.GeminiClient
	dashboard   *dashboard.Service
	reports     *report.Generator
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	st, err := store.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	cat, err := categorizer.New(cfg.Import.RulesFile, logger)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create categorizer: %w", err)
	}

	opts := []dashboard.Option{dashboard.WithThresholds(thresholds(cfg))}

	var coachClient *coach.GeminiClient
	if cfg.CoachEnabled() {
		timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
		coachClient, err = coach.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, timeout, logger)
		if err != nil {
			logger.WithError(err).Warn("AI coaching unavailable")
			coachClient = nil
		} else {
			opts = append(opts, dashboard.WithCoach(coachClient))
			logger.Info("AI coaching enabled", logging.Field{Key: "model", Value: cfg.AI.Model})
		}
	} else {
		logger.Debug("AI coaching disabled")
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldBackend, Value: cfg.Store.Backend},
		logging.Field{Key: "ai_enabled", Value: coachClient != nil})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       st,
		categorizer: cat,
		importer:    importer.NewCAMTImporter(cat, logger),
		coach:       coachClient,
		dashboard:   dashboard.NewService(st, logger, opts...),
		reports:     report.NewGenerator(logger),
	}, nil
}

func thresholds(cfg *config.Config) advisor.Thresholds {
	return advisor.Thresholds{
		LowBalance:       currencyutils.FromFloat(cfg.Alerts.LowBalance),
		WeeklyExpense:    currencyutils.FromFloat(cfg.Alerts.WeeklyExpense),
		GoalDeadlineDays: cfg.Alerts.GoalDeadlineDays,
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the persistence backend selected by the configuration.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetCategorizer returns the rule-based categorizer used by imports.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetImporter returns the bank statement importer.
func (c *Container) GetImporter() *importer.CAMTImporter {
	return c.importer
}

// GetCoach returns the AI coaching client, or nil when coaching is disabled.
func (c *Container) GetCoach() coach.Client {
	if c.coach == nil {
		return nil
	}
	return c.coach
}

// GetDashboard returns the dashboard service.
func (c *Container) GetDashboard() *dashboard.Service {
	return c.dashboard
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}

// Close releases the store and the AI client.
func (c *Container) Close() error {
	var firstErr error
	if c.coach != nil {
		if err := c.coach.Close(); err != nil {
			firstErr = err
		}
	}
	if err := c.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	c.logger.Debug("Container closed")
	return firstErr
}
