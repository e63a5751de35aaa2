// Package dashboard assembles the dashboard view and applies user edits to
// the store.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/analyzer"
	"fjacquet/finanai/internal/charts"
	"fjacquet/finanai/internal/coach"
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/importer"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
	"fjacquet/finanai/internal/store"
)

// ErrGoalNotFound is returned when a goal id matches no stored goal.
var ErrGoalNotFound = errors.New("goal not found")

// AnalyzeFunc computes an analysis; analyzer.Analyze by default.
type AnalyzeFunc func([]models.Transaction, []models.Goal) (*models.AnalysisResult, error)

// Service owns the collaborators the dashboard needs. It holds no data
// between calls: every Build reads the store afresh.
type Service struct {
	store      store.Store
	logger     logging.Logger
	thresholds advisor.Thresholds
	clock      func() time.Time
	coach      coach.Client
	analyze    AnalyzeFunc
}

// Option configures a Service.
type Option func(*Service)

// WithThresholds overrides the alert thresholds.
func WithThresholds(th advisor.Thresholds) Option {
	return func(s *Service) { s.thresholds = th }
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithCoach enables AI coaching tips.
func WithCoach(c coach.Client) Option {
	return func(s *Service) { s.coach = c }
}

// WithAnalyzer replaces the analysis function.
func WithAnalyzer(fn AnalyzeFunc) Option {
	return func(s *Service) { s.analyze = fn }
}

// NewService creates a dashboard service over st.
func NewService(st store.Store, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		store:      st,
		logger:     logger.WithField(logging.FieldComponent, "dashboard"),
		thresholds: advisor.DefaultThresholds(),
		clock:      time.Now,
		analyze:    analyzer.Analyze,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build loads the stored data and computes the full dashboard view.
// A failing analysis never fails the build: the panel is left out.
func (s *Service) Build(ctx context.Context) (*View, error) {
	transactions, goals, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	view := &View{
		GeneratedAt:      now,
		TransactionCount: len(transactions),
		Balance:          advisor.Balance(transactions),
		Recommendations:  advisor.Recommend(transactions, goals, now),
		Alerts:           advisor.Alerts(transactions, goals, now, s.thresholds),
		Charts:           charts.Build(transactions, now),
		ActiveGoals:      models.ActiveGoals(goals),
	}

	result, err := s.safeAnalyze(transactions, goals)
	switch {
	case finerrors.IsNoData(err):
		view.NoData = true
	case err != nil:
		s.logger.WithError(err).Error("Financial analysis failed, omitting analysis panel")
	default:
		view.Analysis = result
		s.logger.Debug("Financial analysis complete",
			logging.Field{Key: logging.FieldTrend, Value: result.Trend.String()},
			logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	}

	if s.coach != nil && view.Analysis != nil {
		tips, err := s.coach.Advise(ctx, view.Analysis)
		if err != nil {
			s.logger.WithError(err).Warn("Coaching tips unavailable")
		} else {
			view.CoachTips = tips
		}
	}

	return view, nil
}

func (s *Service) load(ctx context.Context) ([]models.Transaction, []models.Goal, error) {
	var transactions []models.Transaction
	var goals []models.Goal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.store.LoadTransactions(gctx)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.store.LoadGoals(gctx)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return transactions, goals, nil
}

// safeAnalyze runs the analysis inside an error boundary that turns a panic
// into an error.
func (s *Service) safeAnalyze(transactions []models.Transaction, goals []models.Goal) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic in financial analysis",
				logging.Field{Key: logging.FieldReason, Value: fmt.Sprint(r)},
				logging.Field{Key: "stack", Value: string(debug.Stack())})
			result = nil
			err = fmt.Errorf("analysis panicked: %v", r)
		}
	}()
	return s.analyze(transactions, goals)
}

// AddTransaction validates tx, fills in its id and date when missing and
// appends it to the stored transactions.
func (s *Service) AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.Amount.IsZero() {
		return tx, &finerrors.ValidationError{Record: "transaction", Field: "amount", Reason: "must not be zero"}
	}
	if !tx.Category.IsValid() {
		return tx, &finerrors.ValidationError{Record: "transaction", Field: "category", Reason: fmt.Sprintf("'%s' is not a known category", tx.Category)}
	}
	if tx.Necessity != "" && !tx.Necessity.IsValid() {
		return tx, &finerrors.ValidationError{Record: "transaction", Field: "necessity", Reason: fmt.Sprintf("'%s' is not high, medium or low", tx.Necessity)}
	}

	goals, err := s.store.LoadGoals(ctx)
	if err != nil {
		return tx, fmt.Errorf("failed to load goals: %w", err)
	}
	if tx.GoalContribution != "" && !hasActiveGoal(goals, tx.GoalContribution) {
		return tx, &finerrors.ValidationError{Record: "transaction", Field: "goalContribution", Reason: fmt.Sprintf("'%s' is not an active goal", tx.GoalContribution)}
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = s.clock()
	}
	tx.Description = strings.TrimSpace(tx.Description)

	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return tx, fmt.Errorf("failed to load transactions: %w", err)
	}
	if err := s.store.SaveTransactions(ctx, append(transactions, tx)); err != nil {
		return tx, fmt.Errorf("failed to save transactions: %w", err)
	}

	s.logger.Info("Transaction added",
		logging.Field{Key: logging.FieldTransaction, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category.String()})
	return tx, nil
}

func hasActiveGoal(goals []models.Goal, id string) bool {
	for _, g := range goals {
		if g.ID == id && !g.Completed {
			return true
		}
	}
	return false
}

// AddGoal validates goal and appends it to the stored goals.
func (s *Service) AddGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	goal.Name = strings.TrimSpace(goal.Name)
	if goal.Name == "" {
		return goal, &finerrors.ValidationError{Record: "goal", Field: "name", Reason: "must not be empty"}
	}
	if goal.Date.IsZero() {
		return goal, &finerrors.ValidationError{Record: "goal", Field: "date", Reason: "must be set"}
	}
	if goal.TargetAmount.IsNegative() {
		return goal, &finerrors.ValidationError{Record: "goal", Field: "targetAmount", Reason: "must not be negative"}
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	goals, err := s.store.LoadGoals(ctx)
	if err != nil {
		return goal, fmt.Errorf("failed to load goals: %w", err)
	}
	if err := s.store.SaveGoals(ctx, append(goals, goal)); err != nil {
		return goal, fmt.Errorf("failed to save goals: %w", err)
	}

	s.logger.Info("Goal added", logging.Field{Key: logging.FieldGoal, Value: goal.ID})
	return goal, nil
}

// CompleteGoal marks the goal with the given id as completed.
func (s *Service) CompleteGoal(ctx context.Context, id string) error {
	goals, err := s.store.LoadGoals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	found := false
	for i := range goals {
		if goals[i].ID == id {
			goals[i].Completed = true
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}

	if err := s.store.SaveGoals(ctx, goals); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	s.logger.Info("Goal completed", logging.Field{Key: logging.FieldGoal, Value: id})
	return nil
}

// Import merges imported transactions into the store and returns how many
// were new.
func (s *Service) Import(ctx context.Context, imported []models.Transaction) (int, error) {
	existing, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	merged, added := importer.Merge(existing, imported)
	if added == 0 {
		s.logger.Info("No new transactions to import")
		return 0, nil
	}
	if err := s.store.SaveTransactions(ctx, merged); err != nil {
		return 0, fmt.Errorf("failed to save transactions: %w", err)
	}

	s.logger.Info("Imported transactions", logging.Field{Key: logging.FieldCount, Value: added})
	return added, nil
}
