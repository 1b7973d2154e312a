package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"hirelens/internal/model"
	"hirelens/internal/repository"
)

// defaultOverallScore applies when a completed interview has no scored
// answers at all.
const defaultOverallScore = 75.0

// ReportService compiles the final report for a completed interview. It is
// invoked only inside the single InProgress -> Completed transition, which
// the state machine guards with the per-interview lock and terminal-state
// check; the unique interviewId index is the storage-level backstop.
type ReportService struct {
	reportRepo repository.ReportRepo
	summarizer Summarizer
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepo, summarizer Summarizer) *ReportService {
	return &ReportService{reportRepo: reportRepo, summarizer: summarizer}
}

// Compile aggregates the frozen transcript into a report and returns it
// together with the high-severity integrity flags to stamp on the
// interview. Safe against re-entry: a duplicate save returns the report
// already stored.
func (s *ReportService) Compile(ctx context.Context, interview *model.Interview, transcript []*model.Message) (*model.Report, []model.Flag, error) {
	score := overallScore(transcript)
	flags := highSeverityFlags(transcript)

	summary, err := s.summarizer.SummarizeInterview(ctx, interview, transcript)
	if err != nil {
		log.Printf("summarizer failed for interview %s, compiling without narrative: %v", interview.ID, err)
		summary = &model.InterviewSummary{
			Recommendations: []string{"Automated summary unavailable; review the transcript directly."},
		}
	}

	report := &model.Report{
		ID:              uuid.NewString(),
		InterviewID:     interview.ID,
		OverallScore:    score,
		Strengths:       summary.Strengths,
		Weaknesses:      summary.Weaknesses,
		Recommendations: summary.Recommendations,
		GeneratedAt:     time.Now(),
	}

	duplicate, err := s.reportRepo.Save(ctx, report)
	if err != nil {
		return nil, nil, fmt.Errorf("save report: %w", err)
	}
	if duplicate {
		existing, err := s.reportRepo.GetByInterview(ctx, interview.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("load existing report: %w", err)
		}
		return existing, flags, nil
	}
	return report, flags, nil
}

// GetByInterview returns the compiled report, or ErrNotFound.
func (s *ReportService) GetByInterview(ctx context.Context, interviewID string) (*model.Report, error) {
	report, err := s.reportRepo.GetByInterview(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	if report == nil {
		return nil, ErrNotFound
	}
	return report, nil
}

// overallScore is the mean per-answer confidence on a 0-100 scale.
func overallScore(transcript []*model.Message) float64 {
	sum := 0.0
	count := 0
	for _, msg := range transcript {
		if msg.Role == model.RoleCandidate && msg.Analysis != nil {
			sum += msg.Analysis.Confidence
			count++
		}
	}
	if count == 0 {
		return defaultOverallScore
	}
	return sum / float64(count) * 100
}

// highSeverityFlags collects high-severity integrity flags across the
// transcript, deduplicated by code.
func highSeverityFlags(transcript []*model.Message) []model.Flag {
	seen := make(map[string]bool)
	var flags []model.Flag
	for _, msg := range transcript {
		if msg.Analysis == nil {
			continue
		}
		for _, flag := range msg.Analysis.IntegrityFlags {
			if flag.Severity != model.SeverityHigh || seen[flag.Code] {
				continue
			}
			seen[flag.Code] = true
			flags = append(flags, flag)
		}
	}
	return flags
}
