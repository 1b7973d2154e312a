package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/internal/model"
)

func candidateMsg(seq int, confidence float64, flags ...model.Flag) *model.Message {
	return &model.Message{
		ID:          "msg-" + string(rune('a'+seq)),
		InterviewID: "i1",
		Seq:         seq,
		Role:        model.RoleCandidate,
		Content:     "answer",
		Analysis: &model.AnswerAnalysis{
			Confidence:     confidence,
			Relevance:      confidence,
			EmotionLabel:   "neutral",
			IntegrityFlags: flags,
		},
	}
}

func TestReportCompile_MeanConfidenceScore(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo, &stubSummarizer{})
	interview := &model.Interview{ID: "i1", CandidateName: "Ada", Position: "SRE"}
	transcript := []*model.Message{
		{ID: "q0", InterviewID: "i1", Seq: 0, Role: model.RoleAssistant, Content: "Q"},
		candidateMsg(1, 0.6),
		candidateMsg(2, 0.8),
	}

	report, _, err := svc.Compile(context.Background(), interview, transcript)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, report.OverallScore, 0.001)
	assert.Equal(t, "i1", report.InterviewID)
	assert.NotEmpty(t, report.Strengths)
}

func TestReportCompile_DefaultScoreWithoutAnalyses(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo, &stubSummarizer{})
	interview := &model.Interview{ID: "i1"}
	transcript := []*model.Message{
		{ID: "q0", InterviewID: "i1", Seq: 0, Role: model.RoleAssistant, Content: "Q"},
	}

	report, _, err := svc.Compile(context.Background(), interview, transcript)
	require.NoError(t, err)
	assert.Equal(t, defaultOverallScore, report.OverallScore)
}

func TestReportCompile_HighSeverityFlagsDeduped(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo, &stubSummarizer{})
	interview := &model.Interview{ID: "i1"}
	transcript := []*model.Message{
		candidateMsg(0, 0.5,
			model.Flag{Code: "multiple_faces", Severity: model.SeverityHigh},
			model.Flag{Code: "tab_switching", Severity: model.SeverityLow},
		),
		candidateMsg(1, 0.5,
			model.Flag{Code: "multiple_faces", Severity: model.SeverityHigh},
			model.Flag{Code: "scripted_answer", Severity: model.SeverityHigh},
		),
	}

	_, flags, err := svc.Compile(context.Background(), interview, transcript)
	require.NoError(t, err)
	require.Len(t, flags, 2)
	assert.Equal(t, "multiple_faces", flags[0].Code)
	assert.Equal(t, "scripted_answer", flags[1].Code)
}

func TestReportCompile_SummarizerFailureStillCompiles(t *testing.T) {
	repo := newFakeReportRepo()
	failing := &stubSummarizer{fn: func(ctx context.Context, interview *model.Interview, transcript []*model.Message) (*model.InterviewSummary, error) {
		return nil, errors.New("model unavailable")
	}}
	svc := NewReportService(repo, failing)

	report, _, err := svc.Compile(context.Background(), &model.Interview{ID: "i1"}, []*model.Message{candidateMsg(0, 0.9)})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, report.OverallScore, 0.001)
	assert.NotEmpty(t, report.Recommendations)
}

func TestReportCompile_DuplicateSaveReturnsExisting(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo, &stubSummarizer{})
	interview := &model.Interview{ID: "i1"}
	transcript := []*model.Message{candidateMsg(0, 0.5)}
	ctx := context.Background()

	first, _, err := svc.Compile(ctx, interview, transcript)
	require.NoError(t, err)

	second, _, err := svc.Compile(ctx, interview, transcript)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestReportGetByInterview_NotFound(t *testing.T) {
	svc := NewReportService(newFakeReportRepo(), &stubSummarizer{})

	_, err := svc.GetByInterview(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
