package service

import (
	"context"
	"fmt"
	"log"

	"hirelens/internal/model"
)

// fallbackQuestion is used whenever question generation fails. An
// in-progress interview never aborts because of a transient generation
// failure.
const fallbackQuestion = "Tell me about a challenge you faced in a previous role and how you handled it."

// NextStep is the sequencer's verdict after an answer: either the next
// question or completion.
type NextStep struct {
	Question  *model.Question
	Completed bool
}

// SequencerService decides question flow. Question content may adapt to
// prior answers, but the termination boundary is a pure function of
// counters: once QuestionIndex reaches MaxQuestions the interview
// completes regardless of what the model produced.
type SequencerService struct {
	generator QuestionGenerator
}

// NewSequencerService creates a new sequencer service
func NewSequencerService(generator QuestionGenerator) *SequencerService {
	return &SequencerService{generator: generator}
}

// First produces question zero for a freshly started interview.
func (s *SequencerService) First(ctx context.Context, interview *model.Interview) *model.Question {
	text, err := s.generator.GenerateQuestion(ctx, interview, nil)
	if err != nil {
		log.Printf("question generation failed for interview %s, using fallback: %v", interview.ID, err)
		text = fmt.Sprintf("To get started, tell me about your background and what draws you to the %s role.", interview.Position)
	}
	return &model.Question{Index: 0, Text: text}
}

// Next returns the next question, or completion once the answered-question
// counter has reached the interview's bound.
func (s *SequencerService) Next(ctx context.Context, interview *model.Interview, transcript []*model.Message) NextStep {
	if interview.QuestionIndex >= interview.MaxQuestions {
		return NextStep{Completed: true}
	}

	text, err := s.generator.GenerateQuestion(ctx, interview, transcript)
	if err != nil {
		log.Printf("question generation failed for interview %s, using fallback: %v", interview.ID, err)
		text = fallbackQuestion
	}
	return NextStep{Question: &model.Question{Index: interview.QuestionIndex, Text: text}}
}
