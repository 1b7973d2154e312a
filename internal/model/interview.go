package model

import "time"

type InterviewStatus string

const (
	InterviewPending    InterviewStatus = "pending"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewCancelled  InterviewStatus = "cancelled"
)

// IsTerminal reports whether the interview reached a final state.
// Terminal interviews are immutable: no transcript or index mutation.
func (s InterviewStatus) IsTerminal() bool {
	return s == InterviewCompleted || s == InterviewCancelled
}

// Interview is one candidate's bounded question/answer session.
// QuestionIndex counts answered questions and only ever increases;
// QuestionIndex <= MaxQuestions is an invariant of the state machine.
type Interview struct {
	ID             string          `json:"id" bson:"_id"`
	OwnerID        string          `json:"ownerId" bson:"ownerId"`
	SubscriptionID string          `json:"subscriptionId" bson:"subscriptionId"`
	CandidateName  string          `json:"candidateName" bson:"candidateName"`
	Position       string          `json:"position" bson:"position"`
	Status         InterviewStatus `json:"status" bson:"status"`
	QuestionIndex  int             `json:"questionIndex" bson:"questionIndex"`
	MaxQuestions   int             `json:"maxQuestions" bson:"maxQuestions"`
	OverallScore   *float64        `json:"overallScore,omitempty" bson:"overallScore,omitempty"`
	IntegrityFlags []Flag          `json:"integrityFlags,omitempty" bson:"integrityFlags,omitempty"`
	ReportID       string          `json:"reportId,omitempty" bson:"reportId,omitempty"`
	StartedAt      time.Time       `json:"startedAt" bson:"startedAt"`
	EndedAt        *time.Time      `json:"endedAt,omitempty" bson:"endedAt,omitempty"`
}

type MessageRole string

const (
	RoleAssistant MessageRole = "assistant"
	RoleCandidate MessageRole = "candidate"
)

// Message is one transcript entry, owned by its interview.
// Messages are append-only; Seq gives the total order within a transcript.
type Message struct {
	ID          string          `json:"id" bson:"_id"`
	InterviewID string          `json:"interviewId" bson:"interviewId"`
	Seq         int             `json:"seq" bson:"seq"`
	Role        MessageRole     `json:"role" bson:"role"`
	Content     string          `json:"content" bson:"content"`
	Analysis    *AnswerAnalysis `json:"analysis,omitempty" bson:"analysis,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
}

// Question is a runtime question handed to the candidate.
type Question struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}
