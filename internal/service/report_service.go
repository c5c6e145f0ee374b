package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/persistence"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

const reportCachePrefix = "assignment:report:"

// ReportService builds detailed run reports and caches them in Redis.
type ReportService struct {
	runs   repository.AssignmentRepository
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(runs repository.AssignmentRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{runs: runs, cache: cache, ttl: ttl, logger: logger}
}

// ReportSummary aggregates one run for display.
type ReportSummary struct {
	TotalTickets              int                `json:"total_tickets"`
	PriorityDistribution      map[string]int     `json:"priority_distribution"`
	PriorityPercentages       map[string]float64 `json:"priority_percentages"`
	AgentWorkloadDistribution map[string]int     `json:"agent_workload_distribution"`
	FallbackCount             int                `json:"fallback_count"`
}

// RecordReport is the per-ticket scoring breakdown with display rounding.
type RecordReport struct {
	TicketID        string  `json:"ticket_id"`
	AssignedAgentID string  `json:"assigned_agent_id"`
	PriorityLevel   string  `json:"priority_level"`
	PriorityScore   float64 `json:"priority_score"`
	SkillMatchScore float64 `json:"skill_match_score"`
	WorkloadFactor  float64 `json:"workload_factor"`
	FinalScore      float64 `json:"final_score"`
	Rationale       string  `json:"rationale"`
}

// RunReport is the full detailed report for one allocation run.
type RunReport struct {
	RunID       string         `json:"run_id"`
	Status      string         `json:"status"`
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     ReportSummary  `json:"summary"`
	Assignments []RecordReport `json:"assignments"`
}

// GetRunReport returns the detailed report for a run, reading through the
// Redis cache. Cache failures degrade to a fresh build, never an error.
func (s *ReportService) GetRunReport(ctx context.Context, runID string) (*RunReport, error) {
	if cached := s.readCache(ctx, runID); cached != nil {
		return cached, nil
	}

	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment run", map[string]any{"run_id": runID})
		}
		return nil, apperrors.MapError(err)
	}

	report := BuildRunReport(run)
	s.writeCache(ctx, report)
	return report, nil
}

// BuildRunReport assembles the report payload from a run. Exposed for the
// assignment flow to cache fresh runs without a second read.
func BuildRunReport(run *domain.AssignmentRun) *RunReport {
	summary := ReportSummary{
		TotalTickets:              len(run.Records),
		PriorityDistribution:      make(map[string]int),
		PriorityPercentages:       make(map[string]float64),
		AgentWorkloadDistribution: make(map[string]int),
	}

	assignments := make([]RecordReport, 0, len(run.Records))
	for _, record := range run.Records {
		level := record.PriorityLevel.String()
		summary.PriorityDistribution[level]++
		summary.AgentWorkloadDistribution[record.AssignedAgentID]++
		if record.Fallback {
			summary.FallbackCount++
		}

		assignments = append(assignments, RecordReport{
			TicketID:        record.TicketID,
			AssignedAgentID: record.AssignedAgentID,
			PriorityLevel:   level,
			PriorityScore:   roundTo(record.PriorityScore, 2),
			SkillMatchScore: roundTo(record.SkillMatchScore, 3),
			WorkloadFactor:  roundTo(record.WorkloadFactor, 3),
			FinalScore:      roundTo(record.FinalScore, 3),
			Rationale:       record.Rationale,
		})
	}

	if total := len(run.Records); total > 0 {
		for level, count := range summary.PriorityDistribution {
			summary.PriorityPercentages[level] = roundTo(float64(count)/float64(total)*100, 1)
		}
	}

	return &RunReport{
		RunID:       run.ID,
		Status:      string(run.Status),
		GeneratedAt: time.Now(),
		Summary:     summary,
		Assignments: assignments,
	}
}

// CacheRunReport stores a freshly built report, typically right after a run.
func (s *ReportService) CacheRunReport(ctx context.Context, run *domain.AssignmentRun) {
	s.writeCache(ctx, BuildRunReport(run))
}

func (s *ReportService) readCache(ctx context.Context, runID string) *RunReport {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, reportCachePrefix+runID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("report cache read failed", zap.Error(err))
		}
		return nil
	}
	var report RunReport
	if err := json.Unmarshal(raw, &report); err != nil {
		s.logger.Warn("report cache corrupt", zap.String("run_id", runID), zap.Error(err))
		return nil
	}
	return &report
}

func (s *ReportService) writeCache(ctx context.Context, report *RunReport) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, reportCachePrefix+report.RunID, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
