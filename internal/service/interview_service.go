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

// StartResult is returned from a successful interview start.
type StartResult struct {
	Interview     *model.Interview `json:"interview"`
	SessionToken  string           `json:"sessionToken"`
	FirstQuestion *model.Question  `json:"firstQuestion"`
}

// SubmitResult is returned from an answer submission: either the next
// question or the completion signal with the compiled report reference.
type SubmitResult struct {
	NextQuestion *model.Question `json:"nextQuestion,omitempty"`
	Completed    bool            `json:"completed"`
	ReportID     string          `json:"reportId,omitempty"`
}

// InterviewSnapshot is the read view of an interview and its transcript.
type InterviewSnapshot struct {
	Interview  *model.Interview `json:"interview"`
	Transcript []*model.Message `json:"transcript"`
}

// InterviewService is the orchestrator owning the interview lifecycle:
// Pending -> InProgress -> {Completed, Cancelled}, all transitions one-way.
// Mutating operations on one interview are serialized through a lock keyed
// by interview id; the slow analyzer call runs outside the lock and the
// interview is re-validated after re-acquisition.
type InterviewService struct {
	interviewRepo    repository.InterviewRepo
	messageRepo      repository.MessageRepo
	subscriptionRepo repository.SubscriptionRepo
	ledger           *LedgerService
	sessions         *SessionService
	sequencer        *SequencerService
	analyzer         AnswerAnalyzer
	reports          *ReportService
	broadcaster      Broadcaster
	locks            interviewLocks
	defaultMaxQ      int
}

// NewInterviewService creates a new interview service
func NewInterviewService(
	interviewRepo repository.InterviewRepo,
	messageRepo repository.MessageRepo,
	subscriptionRepo repository.SubscriptionRepo,
	ledger *LedgerService,
	sessions *SessionService,
	sequencer *SequencerService,
	analyzer AnswerAnalyzer,
	reports *ReportService,
	defaultMaxQuestions int,
) *InterviewService {
	if defaultMaxQuestions <= 0 {
		defaultMaxQuestions = 5
	}
	return &InterviewService{
		interviewRepo:    interviewRepo,
		messageRepo:      messageRepo,
		subscriptionRepo: subscriptionRepo,
		ledger:           ledger,
		sessions:         sessions,
		sequencer:        sequencer,
		analyzer:         analyzer,
		reports:          reports,
		defaultMaxQ:      defaultMaxQuestions,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *InterviewService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start consumes one credit from the owner's active subscription, creates
// the interview with its session, and asks the sequencer for question
// zero. If consumption fails, nothing is created.
func (s *InterviewService) Start(ctx context.Context, ownerID, candidateName, position string, maxQuestions int) (*StartResult, error) {
	if candidateName == "" || position == "" {
		return nil, ErrValidation
	}
	if maxQuestions <= 0 {
		maxQuestions = s.defaultMaxQ
	}

	sub, err := s.subscriptionRepo.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if sub == nil {
		return nil, ErrQuotaExhausted
	}
	if err := s.ledger.Consume(ctx, sub.ID); err != nil {
		return nil, err
	}

	interview := &model.Interview{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		SubscriptionID: sub.ID,
		CandidateName:  candidateName,
		Position:       position,
		Status:         model.InterviewPending,
		MaxQuestions:   maxQuestions,
		StartedAt:      time.Now(),
	}
	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		s.compensateStart(ctx, sub.ID)
		return nil, fmt.Errorf("create interview: %w", err)
	}

	session, err := s.sessions.Issue(ctx, interview.ID)
	if err != nil {
		s.compensateStart(ctx, sub.ID)
		return nil, fmt.Errorf("issue session: %w", err)
	}

	first := s.sequencer.First(ctx, interview)
	questionMsg := &model.Message{
		ID:          uuid.NewString(),
		InterviewID: interview.ID,
		Seq:         0,
		Role:        model.RoleAssistant,
		Content:     first.Text,
	}
	if err := s.messageRepo.Append(ctx, questionMsg); err != nil {
		s.compensateStart(ctx, sub.ID)
		return nil, fmt.Errorf("append first question: %w", err)
	}

	interview.Status = model.InterviewInProgress
	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		if cerr := s.sessions.Close(ctx, session.Token, model.SessionCancelled); cerr != nil {
			log.Printf("failed to close session for interview %s: %v", interview.ID, cerr)
		}
		s.compensateStart(ctx, sub.ID)
		return nil, fmt.Errorf("activate interview: %w", err)
	}

	return &StartResult{
		Interview:     interview,
		SessionToken:  session.Token,
		FirstQuestion: first,
	}, nil
}

// compensateStart returns the consumed credit when start fails after
// consumption. Best effort: the credit is better refunded twice never
// than lost (the repository caps refunds at the plan total).
func (s *InterviewService) compensateStart(ctx context.Context, subscriptionID string) {
	if err := s.ledger.Refund(ctx, subscriptionID); err != nil {
		log.Printf("failed to refund credit for subscription %s: %v", subscriptionID, err)
	}
}

// SubmitAnswer records the candidate's answer, analyzes it, and advances
// the interview. The analyzer runs outside the per-interview lock; after
// re-acquisition the interview must still be in progress or the
// submission is rejected as terminal.
func (s *InterviewService) SubmitAnswer(ctx context.Context, token, answerText string, sensors *model.SensorMetadata) (*SubmitResult, error) {
	if answerText == "" {
		return nil, ErrValidation
	}

	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	mu := s.locks.get(session.InterviewID)
	mu.Lock()

	interview, err := s.loadInProgress(ctx, session.InterviewID)
	if err != nil {
		mu.Unlock()
		return nil, err
	}

	transcript, err := s.messageRepo.ListByInterview(ctx, interview.ID)
	if err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	if interview.QuestionIndex >= interview.MaxQuestions {
		// A previous completion attempt failed after the final answer was
		// recorded; finish the transition instead of taking a new answer.
		defer mu.Unlock()
		return s.complete(ctx, interview, token, transcript)
	}

	questionText := lastAssistantContent(transcript)
	indexBefore := interview.QuestionIndex
	mu.Unlock()

	// Slow external call, deliberately outside the lock. Nothing has
	// been persisted for this submission yet; the answer is recorded
	// only after re-validation under the lock.
	analysis, err := s.analyzer.AnalyzeAnswer(ctx, questionText, answerText, sensors)
	if err != nil {
		log.Printf("answer analysis failed for interview %s, using neutral default: %v", interview.ID, err)
		analysis = model.NeutralAnalysis()
	}

	mu.Lock()
	defer mu.Unlock()

	interview, err = s.loadInProgress(ctx, session.InterviewID)
	if err != nil {
		// Cancelled or completed while the analyzer was running.
		return nil, err
	}
	if interview.QuestionIndex != indexBefore {
		// A concurrent submission advanced the interview while the
		// analyzer was running; this one is a duplicate.
		return nil, ErrSubmissionConflict
	}

	transcript, err = s.messageRepo.ListByInterview(ctx, interview.ID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	answerMsg := &model.Message{
		ID:          uuid.NewString(),
		InterviewID: interview.ID,
		Seq:         len(transcript),
		Role:        model.RoleCandidate,
		Content:     answerText,
	}
	if err := s.messageRepo.Append(ctx, answerMsg); err != nil {
		return nil, fmt.Errorf("append answer: %w", err)
	}
	if err := s.messageRepo.AttachAnalysis(ctx, answerMsg.ID, analysis); err != nil {
		return nil, fmt.Errorf("attach analysis: %w", err)
	}
	answerMsg.Analysis = analysis
	transcript = append(transcript, answerMsg)

	interview.QuestionIndex++
	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return nil, fmt.Errorf("advance interview: %w", err)
	}

	step := s.sequencer.Next(ctx, interview, transcript)
	if step.Completed {
		return s.complete(ctx, interview, token, transcript)
	}

	questionMsg := &model.Message{
		ID:          uuid.NewString(),
		InterviewID: interview.ID,
		Seq:         len(transcript),
		Role:        model.RoleAssistant,
		Content:     step.Question.Text,
	}
	if err := s.messageRepo.Append(ctx, questionMsg); err != nil {
		return nil, fmt.Errorf("append question: %w", err)
	}

	if err := s.sessions.Touch(ctx, token); err != nil {
		log.Printf("failed to refresh session for interview %s: %v", interview.ID, err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(interview.ID, "question_asked", map[string]interface{}{
			"questionIndex": step.Question.Index,
			"question":      step.Question.Text,
			"analysis":      analysis,
		})
	}

	return &SubmitResult{NextQuestion: step.Question}, nil
}

// complete performs the single InProgress -> Completed transition. Caller
// holds the interview lock.
func (s *InterviewService) complete(ctx context.Context, interview *model.Interview, token string, transcript []*model.Message) (*SubmitResult, error) {
	report, flags, err := s.reports.Compile(ctx, interview, transcript)
	if err != nil {
		return nil, fmt.Errorf("compile report: %w", err)
	}

	now := time.Now()
	interview.Status = model.InterviewCompleted
	interview.EndedAt = &now
	interview.OverallScore = &report.OverallScore
	interview.IntegrityFlags = flags
	interview.ReportID = report.ID
	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return nil, fmt.Errorf("complete interview: %w", err)
	}

	if err := s.sessions.Close(ctx, token, model.SessionCompleted); err != nil {
		log.Printf("failed to close session for interview %s: %v", interview.ID, err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(interview.ID, "interview_completed", map[string]interface{}{
			"reportId":     report.ID,
			"overallScore": report.OverallScore,
		})
	}

	return &SubmitResult{Completed: true, ReportID: report.ID}, nil
}

// Cancel terminally cancels the interview behind a session token. The
// consumed credit is refunded only when no question was answered yet,
// checked under the interview lock so the refund happens at most once.
func (s *InterviewService) Cancel(ctx context.Context, token string) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}

	mu := s.locks.get(session.InterviewID)
	mu.Lock()
	defer mu.Unlock()

	interview, err := s.interviewRepo.GetByID(ctx, session.InterviewID)
	if err != nil {
		return fmt.Errorf("load interview: %w", err)
	}
	if interview == nil {
		return ErrNotFound
	}
	if interview.Status.IsTerminal() {
		return ErrInterviewTerminal
	}

	now := time.Now()
	interview.Status = model.InterviewCancelled
	interview.EndedAt = &now
	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return fmt.Errorf("cancel interview: %w", err)
	}

	if err := s.sessions.Close(ctx, token, model.SessionCancelled); err != nil {
		log.Printf("failed to close session for interview %s: %v", interview.ID, err)
	}

	if interview.QuestionIndex == 0 {
		if err := s.ledger.Refund(ctx, interview.SubscriptionID); err != nil {
			log.Printf("failed to refund credit for interview %s: %v", interview.ID, err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(interview.ID, "interview_cancelled", map[string]interface{}{
			"questionIndex": interview.QuestionIndex,
		})
	}
	return nil
}

// Get returns an owner's interview with its transcript.
func (s *InterviewService) Get(ctx context.Context, ownerID, interviewID string) (*InterviewSnapshot, error) {
	interview, err := s.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load interview: %w", err)
	}
	if interview == nil || interview.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	transcript, err := s.messageRepo.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return &InterviewSnapshot{Interview: interview, Transcript: transcript}, nil
}

// List returns all interviews for an owner, newest first.
func (s *InterviewService) List(ctx context.Context, ownerID string) ([]*model.Interview, error) {
	interviews, err := s.interviewRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return interviews, nil
}

// OwnsInterview reports whether the interview belongs to the owner.
func (s *InterviewService) OwnsInterview(ctx context.Context, ownerID, interviewID string) (bool, error) {
	interview, err := s.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return false, err
	}
	return interview != nil && interview.OwnerID == ownerID, nil
}

// loadInProgress fetches an interview that must currently be accepting
// answers. Pending is not terminal: it means the start sequence never
// activated the interview, so it is reported as not found rather than as
// a terminal-state conflict.
func (s *InterviewService) loadInProgress(ctx context.Context, interviewID string) (*model.Interview, error) {
	interview, err := s.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load interview: %w", err)
	}
	if interview == nil {
		return nil, ErrNotFound
	}
	if interview.Status.IsTerminal() {
		return nil, ErrInterviewTerminal
	}
	if interview.Status != model.InterviewInProgress {
		return nil, ErrNotFound
	}
	return interview, nil
}

func lastAssistantContent(transcript []*model.Message) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == model.RoleAssistant {
			return transcript[i].Content
		}
	}
	return ""
}
