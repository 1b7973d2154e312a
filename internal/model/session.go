package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session gates mutating access to one interview. The token is the
// capability: it is opaque, unguessable, and exactly one active session
// exists per interview. A session back-references its interview, it does
// not own the interview's lifecycle.
type Session struct {
	Token       string        `json:"token" bson:"token"`
	InterviewID string        `json:"interviewId" bson:"interviewId"`
	Status      SessionStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	ClosedAt    *time.Time    `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
}
