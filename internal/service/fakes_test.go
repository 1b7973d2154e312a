package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"hirelens/internal/model"
)

// In-memory fakes mirroring the repository and cache contracts, with the
// same conditional semantics the MongoDB and Redis implementations have.

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*model.Subscription
	err  error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*model.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *model.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(ctx context.Context, id string) (*model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	sub, ok := r.subs[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubscriptionRepo) GetActiveByOwner(ctx context.Context, ownerID string) (*model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, sub := range r.subs {
		if sub.OwnerID == ownerID && sub.Status == model.SubscriptionActive {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) ConsumeCredit(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	sub, ok := r.subs[id]
	if !ok || sub.Status != model.SubscriptionActive || sub.CreditsRemaining <= 0 {
		return false, nil
	}
	sub.CreditsRemaining--
	return true, nil
}

func (r *fakeSubscriptionRepo) RefundCredit(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	sub, ok := r.subs[id]
	if !ok || sub.CreditsRemaining >= sub.CreditsTotal {
		return false, nil
	}
	sub.CreditsRemaining++
	return true, nil
}

func (r *fakeSubscriptionRepo) UpdateStatus(ctx context.Context, id string, status model.SubscriptionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if sub, ok := r.subs[id]; ok {
		sub.Status = status
	}
	return nil
}

func (r *fakeSubscriptionRepo) remaining(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[id].CreditsRemaining
}

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[string]*model.Interview
	createErr  error
	updateErr  error
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[string]*model.Interview)}
}

func (r *fakeInterviewRepo) Create(ctx context.Context, interview *model.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *interview
	r.interviews[interview.ID] = &cp
	return nil
}

func (r *fakeInterviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	interview, ok := r.interviews[id]
	if !ok {
		return nil, nil
	}
	cp := *interview
	return &cp, nil
}

func (r *fakeInterviewRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Interview
	for _, interview := range r.interviews {
		if interview.OwnerID == ownerID {
			cp := *interview
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (r *fakeInterviewRepo) Update(ctx context.Context, interview *model.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *interview
	r.interviews[interview.ID] = &cp
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*model.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Append(ctx context.Context, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *msg
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeMessageRepo) ListByInterview(ctx context.Context, interviewID string) ([]*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Message
	for _, msg := range r.messages {
		if msg.InterviewID == interviewID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (r *fakeMessageRepo) AttachAnalysis(ctx context.Context, messageID string, analysis *model.AnswerAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ID == messageID && msg.Analysis == nil {
			msg.Analysis = analysis
			return nil
		}
	}
	return nil
}

func (r *fakeMessageRepo) count(interviewID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, msg := range r.messages {
		if msg.InterviewID == interviewID {
			n++
		}
	}
	return n
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*model.Report
	saveErr error
	saves   int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*model.Report)}
}

func (r *fakeReportRepo) Save(ctx context.Context, report *model.Report) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return false, r.saveErr
	}
	r.saves++
	if _, exists := r.reports[report.InterviewID]; exists {
		return true, nil
	}
	cp := *report
	r.reports[report.InterviewID] = &cp
	return false, nil
}

func (r *fakeReportRepo) GetByInterview(ctx context.Context, interviewID string) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[interviewID]
	if !ok {
		return nil, nil
	}
	cp := *report
	return &cp, nil
}

type fakeSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	slots    map[string]string
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{
		sessions: make(map[string]*model.Session),
		slots:    make(map[string]string),
	}
}

func (c *fakeSessionCache) Save(ctx context.Context, session *model.Session, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *session
	c.sessions[session.Token] = &cp
	return nil
}

func (c *fakeSessionCache) Get(ctx context.Context, token string) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, ok := c.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (c *fakeSessionCache) Touch(ctx context.Context, token string, ttl time.Duration) error {
	return nil
}

func (c *fakeSessionCache) AcquireInterviewSlot(ctx context.Context, interviewID, token string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, held := c.slots[interviewID]; held {
		return false, nil
	}
	c.slots[interviewID] = token
	return true, nil
}

func (c *fakeSessionCache) ReleaseInterviewSlot(ctx context.Context, interviewID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, interviewID)
	return nil
}

func (c *fakeSessionCache) slotHeld(interviewID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, held := c.slots[interviewID]
	return held
}

// Stub AI collaborators with overridable behavior per test.

type stubAnalyzer struct {
	fn func(ctx context.Context, question, answer string, sensors *model.SensorMetadata) (*model.AnswerAnalysis, error)
}

func (a *stubAnalyzer) AnalyzeAnswer(ctx context.Context, question, answer string, sensors *model.SensorMetadata) (*model.AnswerAnalysis, error) {
	if a.fn != nil {
		return a.fn(ctx, question, answer, sensors)
	}
	return &model.AnswerAnalysis{Confidence: 0.8, Relevance: 0.8, EmotionLabel: "confident"}, nil
}

type stubGenerator struct {
	fn func(ctx context.Context, interview *model.Interview, transcript []*model.Message) (string, error)
}

func (g *stubGenerator) GenerateQuestion(ctx context.Context, interview *model.Interview, transcript []*model.Message) (string, error) {
	if g.fn != nil {
		return g.fn(ctx, interview, transcript)
	}
	return "What interests you about this role?", nil
}

type stubSummarizer struct {
	fn func(ctx context.Context, interview *model.Interview, transcript []*model.Message) (*model.InterviewSummary, error)
}

func (s *stubSummarizer) SummarizeInterview(ctx context.Context, interview *model.Interview, transcript []*model.Message) (*model.InterviewSummary, error) {
	if s.fn != nil {
		return s.fn(ctx, interview, transcript)
	}
	return &model.InterviewSummary{
		Strengths:       []string{"Clear communication"},
		Weaknesses:      []string{"Few concrete examples"},
		Recommendations: []string{"Proceed to the next round"},
	}, nil
}

// harness wires an InterviewService over the fakes.
type harness struct {
	svc       *InterviewService
	subs      *fakeSubscriptionRepo
	intervs   *fakeInterviewRepo
	msgs      *fakeMessageRepo
	reports   *fakeReportRepo
	cache     *fakeSessionCache
	analyzer  *stubAnalyzer
	generator *stubGenerator
}

func newHarness() *harness {
	subs := newFakeSubscriptionRepo()
	intervs := newFakeInterviewRepo()
	msgs := newFakeMessageRepo()
	reports := newFakeReportRepo()
	sessionCache := newFakeSessionCache()
	analyzer := &stubAnalyzer{}
	generator := &stubGenerator{}

	ledger := NewLedgerService(subs)
	sessions := NewSessionService(sessionCache, 30*time.Minute)
	sequencer := NewSequencerService(generator)
	reportSvc := NewReportService(reports, &stubSummarizer{})
	svc := NewInterviewService(intervs, msgs, subs, ledger, sessions, sequencer, analyzer, reportSvc, 5)

	return &harness{
		svc:       svc,
		subs:      subs,
		intervs:   intervs,
		msgs:      msgs,
		reports:   reports,
		cache:     sessionCache,
		analyzer:  analyzer,
		generator: generator,
	}
}

func (h *harness) seedSubscription(ownerID string, credits int) *model.Subscription {
	sub := &model.Subscription{
		ID:               "sub-" + ownerID,
		OwnerID:          ownerID,
		PlanName:         "Starter",
		CreditsTotal:     credits,
		CreditsRemaining: credits,
		Status:           model.SubscriptionActive,
		CreatedAt:        time.Now(),
	}
	h.subs.Create(context.Background(), sub)
	return sub
}
