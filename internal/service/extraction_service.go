package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/extraction"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/port"
	"volunteerhub/internal/prompts"
)

// Stage is a step of the extraction pipeline.
type Stage string

const (
	StageReceived       Stage = "received"
	StageValidated      Stage = "validated"
	StageModelCalled    Stage = "model_called"
	StageResponseParsed Stage = "response_parsed"
	StageReturned       Stage = "returned"
	StageFailed         Stage = "failed"
)

// Operation labels used in logs and metrics.
const (
	OpExtract      = "extract"
	OpAttendance   = "attendance"
	OpCompetencies = "competencies"
)

// ExtractionService turns unstructured notes or images into structured records
// through the configured language model.
type ExtractionService interface {
	Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error)
	ExtractAttendance(ctx context.Context, req domain.AttendanceRequest) (*domain.AttendanceResult, error)
	AnalyzeCompetencies(ctx context.Context, req domain.CompetencyRequest) (*domain.CompetencyResult, error)
	Ready() bool
}

type extractionService struct {
	model   port.LanguageModel
	metrics *metrics.Metrics
}

// NewExtractionService creates a new ExtractionService. model may be nil, in
// which case every call fails with domain.ErrNoModelConfigured.
func NewExtractionService(model port.LanguageModel, m *metrics.Metrics) ExtractionService {
	return &extractionService{model: model, metrics: m}
}

func (s *extractionService) Ready() bool {
	return s.model != nil
}

// run tracks one request through the pipeline stages.
type run struct {
	svc       *extractionService
	operation string
	stage     Stage
}

func (s *extractionService) begin(operation string) *run {
	r := &run{svc: s, operation: operation}
	r.advance(StageReceived)
	return r
}

func (r *run) advance(stage Stage) {
	r.stage = stage
	r.svc.metrics.ObserveStage(r.operation, string(stage))
}

func (r *run) fail(err error) error {
	zap.L().Error("extractionService: pipeline failed",
		zap.String("operation", r.operation),
		zap.String("stage", string(r.stage)),
		zap.String("kind", string(domain.KindOf(err))),
		zap.Error(err))
	r.advance(StageFailed)
	return err
}

func (r *run) call(ctx context.Context, p *prompts.Prompt, input port.CompletionInput, out interface{}) error {
	if r.svc.model == nil {
		return r.fail(domain.ErrNoModelConfigured)
	}

	start := time.Now()
	resp, err := r.svc.model.Complete(ctx, input)
	r.advance(StageModelCalled)
	if err != nil {
		r.svc.metrics.ObserveModelCall(r.operation, string(domain.KindOf(err)), time.Since(start))
		return r.fail(fmt.Errorf("calling model: %w", err))
	}
	r.svc.metrics.ObserveModelCall(r.operation, "ok", time.Since(start))

	if err := extraction.Decode(p.Schema, resp.Text, out); err != nil {
		return r.fail(err)
	}
	r.advance(StageResponseParsed)

	zap.L().Info("extractionService: model output parsed",
		zap.String("operation", r.operation),
		zap.String("model", resp.ModelUsed),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *extractionService) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	r := s.begin(OpExtract)

	eventName := strings.TrimSpace(req.EventName)
	notes := strings.TrimSpace(req.MeetingNotes)
	if eventName == "" || !req.HasContent() {
		return nil, r.fail(domain.ErrMissingFields)
	}
	if req.ImageData != "" {
		if _, _, err := extraction.SplitDataURL(req.ImageData); err != nil {
			return nil, r.fail(err)
		}
	}
	r.advance(StageValidated)

	p, err := prompts.Get(prompts.Extraction)
	if err != nil {
		return nil, r.fail(err)
	}

	input := port.CompletionInput{SystemPrompt: p.System}
	vars := map[string]string{"EventName": eventName, "Content": notes}
	if req.ImageData != "" {
		input.UserText = prompts.Format(p.UserImage, vars)
		input.ImageDataURL = req.ImageData
	} else {
		input.UserText = prompts.Format(p.User, vars)
	}

	var result domain.ExtractionResult
	if err := r.call(ctx, p, input, &result); err != nil {
		return nil, err
	}

	result.ExtractedData = extraction.NormalizePeople(result.ExtractedData)
	r.advance(StageReturned)

	zap.L().Info("extractionService.Extract: extracted people",
		zap.String("event", eventName),
		zap.Int("people", len(result.ExtractedData)))
	return &result, nil
}

func (s *extractionService) ExtractAttendance(ctx context.Context, req domain.AttendanceRequest) (*domain.AttendanceResult, error) {
	r := s.begin(OpAttendance)

	eventName := strings.TrimSpace(req.EventName)
	notes := strings.TrimSpace(req.MeetingNotes)
	if eventName == "" || notes == "" {
		return nil, r.fail(domain.ErrMissingFields)
	}
	r.advance(StageValidated)

	p, err := prompts.Get(prompts.Attendance)
	if err != nil {
		return nil, r.fail(err)
	}

	var parsed struct {
		Attendees []domain.Attendee `json:"attendees"`
	}
	input := port.CompletionInput{
		SystemPrompt: p.System,
		UserText:     prompts.Format(p.User, map[string]string{"Content": notes}),
	}
	if err := r.call(ctx, p, input, &parsed); err != nil {
		return nil, err
	}

	attendees := make([]domain.Attendee, 0, len(parsed.Attendees))
	for _, a := range parsed.Attendees {
		a.Name = strings.TrimSpace(a.Name)
		a.Designation = strings.TrimSpace(a.Designation)
		if a.Name == "" {
			continue
		}
		if a.Designation == "" {
			a.Designation = domain.DefaultDesignation
		}
		attendees = append(attendees, a)
	}
	r.advance(StageReturned)

	zap.L().Info("extractionService.ExtractAttendance: extracted attendees",
		zap.String("event", eventName),
		zap.Int("attendees", len(attendees)))
	return &domain.AttendanceResult{Attendees: attendees, EventName: eventName}, nil
}

func (s *extractionService) AnalyzeCompetencies(ctx context.Context, req domain.CompetencyRequest) (*domain.CompetencyResult, error) {
	r := s.begin(OpCompetencies)

	accomplishments := strings.TrimSpace(req.Accomplishments)
	if accomplishments == "" {
		return nil, r.fail(domain.ErrMissingFields)
	}
	r.advance(StageValidated)

	p, err := prompts.Get(prompts.Competencies)
	if err != nil {
		return nil, r.fail(err)
	}

	var result domain.CompetencyResult
	input := port.CompletionInput{
		SystemPrompt: p.System,
		UserText:     prompts.Format(p.User, map[string]string{"Content": accomplishments}),
	}
	if err := r.call(ctx, p, input, &result); err != nil {
		return nil, err
	}
	if result.Competencies == nil {
		result.Competencies = []domain.Competency{}
	}
	r.advance(StageReturned)

	zap.L().Info("extractionService.AnalyzeCompetencies: identified competencies",
		zap.Int("competencies", len(result.Competencies)))
	return &result, nil
}
