package model

// FlagSeverity orders integrity findings for report aggregation.
type FlagSeverity string

const (
	SeverityLow    FlagSeverity = "low"
	SeverityMedium FlagSeverity = "medium"
	SeverityHigh   FlagSeverity = "high"
)

// Flag is one structured integrity finding on an answer.
type Flag struct {
	Code     string       `json:"code" bson:"code"` // e.g., "eyes_off_screen", "scripted_answer"
	Severity FlagSeverity `json:"severity" bson:"severity"`
	Detail   string       `json:"detail,omitempty" bson:"detail,omitempty"`
}

// AnswerAnalysis contains the AI-extracted structured data for one
// candidate answer. It is produced once and immutable once attached.
type AnswerAnalysis struct {
	Confidence     float64  `json:"confidence" bson:"confidence"` // 0-1
	Relevance      float64  `json:"relevance" bson:"relevance"`   // 0-1
	EmotionLabel   string   `json:"emotionLabel" bson:"emotionLabel"`
	IntegrityFlags []Flag   `json:"integrityFlags,omitempty" bson:"integrityFlags,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty" bson:"suggestions,omitempty"`
}

// NeutralAnalysis is substituted when the analyzer collaborator is
// unavailable so an in-progress interview never aborts on a transient
// analysis failure.
func NeutralAnalysis() *AnswerAnalysis {
	return &AnswerAnalysis{
		Confidence:   0.7,
		Relevance:    0.5,
		EmotionLabel: "neutral",
	}
}

// SensorMetadata is the structured output of the client-side proctoring
// layer, passed through to the analyzer. All fields are optional signals.
type SensorMetadata struct {
	EyesOffScreenRatio float64 `json:"eyesOffScreenRatio,omitempty"`
	MultipleFaces      bool    `json:"multipleFaces,omitempty"`
	TabSwitches        int     `json:"tabSwitches,omitempty"`
}

// InterviewSummary is the AI response for final report summarization.
type InterviewSummary struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}
