package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hirelens/internal/config"
	"hirelens/internal/model"
)

// AnswerAnalyzer produces a structured analysis for one candidate answer.
// It must return within a bounded time or signal failure; on failure the
// orchestrator substitutes model.NeutralAnalysis.
type AnswerAnalyzer interface {
	AnalyzeAnswer(ctx context.Context, question, answer string, sensors *model.SensorMetadata) (*model.AnswerAnalysis, error)
}

// QuestionGenerator produces interview question text. Same failure
// contract: the sequencer falls back to a fixed question.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, interview *model.Interview, transcript []*model.Message) (string, error)
}

// Summarizer turns a frozen transcript into report narrative. Used only
// by the report compiler.
type Summarizer interface {
	SummarizeInterview(ctx context.Context, interview *model.Interview, transcript []*model.Message) (*model.InterviewSummary, error)
}

// EvaluatorService implements the three AI collaborators via the Gemini
// API with per-task models. Without an API key it runs deterministic local
// evaluation so the whole flow works offline.
type EvaluatorService struct {
	config *config.AIConfig
	client *http.Client
}

// NewEvaluatorService creates a new evaluator service
func NewEvaluatorService(cfg *config.AIConfig) *EvaluatorService {
	return &EvaluatorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// AnalyzeAnswer scores one answer and extracts emotion and integrity flags.
func (s *EvaluatorService) AnalyzeAnswer(ctx context.Context, question, answer string, sensors *model.SensorMetadata) (*model.AnswerAnalysis, error) {
	if !s.config.IsEnabled() {
		return s.localAnalysis(answer, sensors), nil
	}

	prompt := s.buildAnalysisPrompt(question, answer, sensors)
	response, err := s.callGemini(ctx, s.config.Models.Analysis, prompt)
	if err != nil {
		return nil, err
	}

	var analysis model.AnswerAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	analysis.Confidence = clamp01(analysis.Confidence)
	analysis.Relevance = clamp01(analysis.Relevance)
	return &analysis, nil
}

// GenerateQuestion produces the next question text, adapting to the
// transcript so far.
func (s *EvaluatorService) GenerateQuestion(ctx context.Context, interview *model.Interview, transcript []*model.Message) (string, error) {
	if !s.config.IsEnabled() {
		return s.localQuestion(interview), nil
	}

	prompt := s.buildQuestionPrompt(interview, transcript)
	response, err := s.callGemini(ctx, s.config.Models.Question, prompt)
	if err != nil {
		return "", err
	}

	var gen struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(response), &gen); err != nil {
		return "", fmt.Errorf("parse question: %w", err)
	}
	if gen.Question == "" {
		return "", fmt.Errorf("empty question from model")
	}
	return gen.Question, nil
}

// SummarizeInterview produces the report narrative from the transcript.
func (s *EvaluatorService) SummarizeInterview(ctx context.Context, interview *model.Interview, transcript []*model.Message) (*model.InterviewSummary, error) {
	if !s.config.IsEnabled() {
		return s.localSummary(interview, transcript), nil
	}

	prompt := s.buildSummaryPrompt(interview, transcript)
	response, err := s.callGemini(ctx, s.config.Models.Summary, prompt)
	if err != nil {
		return nil, err
	}

	var summary model.InterviewSummary
	if err := json.Unmarshal([]byte(response), &summary); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	return &summary, nil
}

// callGemini makes a request to the Gemini API
func (s *EvaluatorService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// Prompt builders
func (s *EvaluatorService) buildAnalysisPrompt(question, answer string, sensors *model.SensorMetadata) string {
	sensorCtx := ""
	if sensors != nil {
		sensorCtx = fmt.Sprintf(`
Proctoring signals:
- Eyes off screen ratio: %.2f
- Multiple faces detected: %t
- Tab switches during answer: %d`,
			sensors.EyesOffScreenRatio, sensors.MultipleFaces, sensors.TabSwitches)
	}

	return fmt.Sprintf(`You are analyzing a candidate's interview answer. Return ONLY valid JSON matching this schema:
{
  "confidence": 0.0 to 1.0,
  "relevance": 0.0 to 1.0,
  "emotionLabel": "calm" | "confident" | "nervous" | "hesitant" | "neutral",
  "integrityFlags": [{"code": "short_code", "severity": "low"|"medium"|"high", "detail": "one sentence"}],
  "suggestions": ["short improvement tip"]
}

Question: %s
Candidate's Answer: %s
%s

Score how confidently and relevantly the candidate answered. Raise integrity
flags only when the answer or the proctoring signals genuinely warrant them
(e.g., reading a script, answer unrelated to the question, repeated tab
switching).`, question, answer, sensorCtx)
}

func (s *EvaluatorService) buildQuestionPrompt(interview *model.Interview, transcript []*model.Message) string {
	historyStr := ""
	if len(transcript) > 0 {
		var sb strings.Builder
		sb.WriteString("\nInterview so far:\n")
		for _, msg := range transcript {
			switch msg.Role {
			case model.RoleAssistant:
				sb.WriteString(fmt.Sprintf("- Interviewer asked: %q\n", msg.Content))
			case model.RoleCandidate:
				sb.WriteString(fmt.Sprintf("- Candidate answered: %q\n", msg.Content))
			}
		}
		historyStr = sb.String()
	}

	return fmt.Sprintf(`You are a professional interviewer. Generate the next interview question.
Return ONLY valid JSON:
{"question": "the question text"}

Position: %s
Candidate: %s
Question %d of %d
%s

Instructions:
1. Ask one clear, open question relevant to the position.
2. Build on the candidate's previous answers where possible.
3. Do not repeat a question already asked.
4. Keep it conversational and under 40 words.`,
		interview.Position, interview.CandidateName,
		interview.QuestionIndex+1, interview.MaxQuestions, historyStr)
}

func (s *EvaluatorService) buildSummaryPrompt(interview *model.Interview, transcript []*model.Message) string {
	var sb strings.Builder
	for _, msg := range transcript {
		switch msg.Role {
		case model.RoleAssistant:
			sb.WriteString(fmt.Sprintf("Q: %s\n", msg.Content))
		case model.RoleCandidate:
			sb.WriteString(fmt.Sprintf("A: %s\n", msg.Content))
			if msg.Analysis != nil {
				sb.WriteString(fmt.Sprintf("   (confidence %.2f, relevance %.2f, emotion %s)\n",
					msg.Analysis.Confidence, msg.Analysis.Relevance, msg.Analysis.EmotionLabel))
			}
		}
	}

	return fmt.Sprintf(`Summarize this completed interview for the hiring team. Return ONLY valid JSON:
{
  "strengths": ["strength 1", "strength 2"],
  "weaknesses": ["weakness 1"],
  "recommendations": ["next step 1"]
}

Position: %s
Candidate: %s

Transcript:
%s

Be concrete and cite what the candidate actually said.`,
		interview.Position, interview.CandidateName, sb.String())
}

// Local fallbacks used when no API key is configured.
func (s *EvaluatorService) localAnalysis(answer string, sensors *model.SensorMetadata) *model.AnswerAnalysis {
	wordCount := len(strings.Fields(answer))
	confidence := float64(wordCount) / 50.0
	if confidence > 0.95 {
		confidence = 0.95
	}
	if confidence < 0.2 {
		confidence = 0.2
	}

	var flags []model.Flag
	if sensors != nil && sensors.MultipleFaces {
		flags = append(flags, model.Flag{
			Code:     "multiple_faces",
			Severity: model.SeverityHigh,
			Detail:   "More than one face detected during the answer.",
		})
	}

	return &model.AnswerAnalysis{
		Confidence:     confidence,
		Relevance:      confidence,
		EmotionLabel:   "neutral",
		IntegrityFlags: flags,
		Suggestions:    []string{"Add a concrete example to support the answer."},
	}
}

func (s *EvaluatorService) localQuestion(interview *model.Interview) string {
	canned := []string{
		"Walk me through a recent project you are proud of and your role in it.",
		"Describe a difficult technical problem you solved. What made it hard?",
		"Tell me about a time you disagreed with a teammate. How did you resolve it?",
		"What part of this role do you expect to find most challenging, and why?",
		"How do you decide when work is good enough to ship?",
		"What would your last team say is your biggest strength?",
	}
	return canned[interview.QuestionIndex%len(canned)]
}

func (s *EvaluatorService) localSummary(interview *model.Interview, transcript []*model.Message) *model.InterviewSummary {
	answered := 0
	for _, msg := range transcript {
		if msg.Role == model.RoleCandidate {
			answered++
		}
	}
	return &model.InterviewSummary{
		Strengths:       []string{fmt.Sprintf("Completed %d of %d questions for the %s role.", answered, interview.MaxQuestions, interview.Position)},
		Weaknesses:      []string{"Automated summary unavailable; review the transcript directly."},
		Recommendations: []string{"Enable the AI summarizer for a full narrative report."},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
