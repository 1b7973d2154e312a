package model

import "time"

// Report is the compiled outcome of a completed interview.
// At most one report exists per interview; a unique index on InterviewID
// backs that at the storage layer.
type Report struct {
	ID              string    `json:"id" bson:"_id"`
	InterviewID     string    `json:"interviewId" bson:"interviewId"`
	OverallScore    float64   `json:"overallScore" bson:"overallScore"` // 0-100
	Strengths       []string  `json:"strengths,omitempty" bson:"strengths,omitempty"`
	Weaknesses      []string  `json:"weaknesses,omitempty" bson:"weaknesses,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
	GeneratedAt     time.Time `json:"generatedAt" bson:"generatedAt"`
}
