package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/atlas/core/algo"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyIdentifier is returned when a team or sprint identifier is blank.
var ErrEmptyIdentifier = errors.New("team and sprint identifiers must not be empty")

// Analyzer computes team risk from the data held by a TeamDataStore.
type Analyzer struct {
	store contract.TeamDataStore
	clock func() time.Time
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithClock overrides the clock used for AnalyzedAt.
func WithClock(clock func() time.Time) AnalyzerOption {
	return func(a *Analyzer) { a.clock = clock }
}

// NewAnalyzer creates an Analyzer backed by the given store.
func NewAnalyzer(store contract.TeamDataStore, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeTeamRisk reads the team's votes, metrics and objectives for the sprint
// and computes its risk. Missing data is not an error; read failures are.
func (a *Analyzer) AnalyzeTeamRisk(ctx context.Context, teamID, sprint string) (*schema.RiskAnalysisResult, error) {
	teamID, sprint = strings.TrimSpace(teamID), strings.TrimSpace(sprint)
	if teamID == "" || sprint == "" {
		return nil, ErrEmptyIdentifier
	}

	data, err := a.loadTeamData(ctx, teamID, sprint)
	if err != nil {
		return nil, err
	}

	result := algo.Score(teamID, sprint, data)
	result.AnalyzedAt = a.clock()
	return &result, nil
}

// CalculateAndSaveRiskScore analyzes the team and persists the result as a new record.
func (a *Analyzer) CalculateAndSaveRiskScore(ctx context.Context, teamID, sprint string) (*schema.RiskScoreRecord, error) {
	result, err := a.AnalyzeTeamRisk(ctx, teamID, sprint)
	if err != nil {
		return nil, err
	}
	record, err := a.store.SaveRiskScore(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to save risk score for team %s sprint %s: %w", result.TeamID, result.Sprint, err)
	}
	return record, nil
}

// loadTeamData issues the three reads concurrently.
func (a *Analyzer) loadTeamData(ctx context.Context, teamID, sprint string) (schema.TeamData, error) {
	var data schema.TeamData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		votes, err := a.store.ListConfidenceVotes(gctx, teamID, sprint)
		if err != nil {
			return fmt.Errorf("failed to load confidence votes: %w", err)
		}
		data.Votes = votes
		return nil
	})
	g.Go(func() error {
		metrics, err := a.store.ListMetrics(gctx, teamID, sprint)
		if err != nil {
			return fmt.Errorf("failed to load metrics: %w", err)
		}
		data.Metrics = metrics
		return nil
	})
	g.Go(func() error {
		objectives, err := a.store.ListObjectives(gctx, teamID, sprint)
		if err != nil {
			return fmt.Errorf("failed to load objectives: %w", err)
		}
		data.Objectives = objectives
		return nil
	})

	if err := g.Wait(); err != nil {
		return schema.TeamData{}, err
	}
	return data, nil
}
