package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/extraction"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/port"
	"volunteerhub/internal/service"
	"volunteerhub/mocks"
)

func setupExtractionService() (service.ExtractionService, *mocks.MockLanguageModel) {
	model := new(mocks.MockLanguageModel)
	return service.NewExtractionService(model, metrics.New()), model
}

func modelReturns(model *mocks.MockLanguageModel, text string) {
	model.On("Complete", mock.Anything, mock.Anything).
		Return(&port.CompletionOutput{Text: text, ModelUsed: "test-model"}, nil)
}

func TestExtract_SaraMovesChairs(t *testing.T) {
	svc, model := setupExtractionService()
	modelReturns(model, "```json\n"+`{"extractedData":[{"name":"Sara","designation":"","identifier":"","contributions":[{"highlight":"Helped move chairs"}]}]}`+"\n```")

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{
		MeetingNotes: "Sara, help move chairs",
		EventName:    "Beach Cleanup",
	})

	require.NoError(t, err)
	require.Len(t, result.ExtractedData, 1)
	assert.Equal(t, domain.ExtractedPerson{
		Name:          "Sara",
		Contributions: []domain.Contribution{{Highlight: "Helped move chairs"}},
	}, result.ExtractedData[0])

	model.AssertCalled(t, "Complete", mock.Anything, mock.MatchedBy(func(in port.CompletionInput) bool {
		return in.ImageDataURL == "" &&
			in.UserText == "Event: Beach Cleanup\n\nMeeting Notes:\nSara, help move chairs" &&
			strings.Contains(in.SystemPrompt, "DO NOT infer, assume, or generate contributions")
	}))
}

func TestExtract_JohnTanHasNoContributions(t *testing.T) {
	svc, model := setupExtractionService()
	modelReturns(model, `{"extractedData":[{"name":"John Tan","designation":"Event Lead","identifier":"","contributions":[]}]}`)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{
		MeetingNotes: "John Tan, Event Lead",
		EventName:    "Town Hall",
	})

	require.NoError(t, err)
	require.Len(t, result.ExtractedData, 1)
	assert.Equal(t, "Event Lead", result.ExtractedData[0].Designation)
	assert.NotNil(t, result.ExtractedData[0].Contributions)
	assert.Empty(t, result.ExtractedData[0].Contributions)
}

func TestExtract_ImagePath(t *testing.T) {
	svc, model := setupExtractionService()
	modelReturns(model, `{"extractedData":[]}`)
	dataURL := "data:image/jpeg;base64,/9j/4AAQ"

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{
		ImageData: dataURL,
		EventName: "Food Drive",
		FileType:  "image/jpeg",
	})

	require.NoError(t, err)
	assert.Empty(t, result.ExtractedData)
	model.AssertCalled(t, "Complete", mock.Anything, mock.MatchedBy(func(in port.CompletionInput) bool {
		return in.ImageDataURL == dataURL && in.UserText == "Event: Food Drive\n\nPlease extract attendance and contribution information from this image:"
	}))
}

func TestExtract_MissingFields_NoModelCall(t *testing.T) {
	tests := []struct {
		name string
		req  domain.ExtractionRequest
	}{
		{"blank event", domain.ExtractionRequest{MeetingNotes: "Sara", EventName: "   "}},
		{"no content", domain.ExtractionRequest{EventName: "Cleanup"}},
		{"whitespace notes", domain.ExtractionRequest{EventName: "Cleanup", MeetingNotes: " \n "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, model := setupExtractionService()

			_, err := svc.Extract(context.Background(), tt.req)

			assert.True(t, errors.Is(err, domain.ErrMissingFields))
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
		})
	}
}

func TestExtract_BadImageIsUnprocessable(t *testing.T) {
	svc, model := setupExtractionService()

	_, err := svc.Extract(context.Background(), domain.ExtractionRequest{ImageData: "not-a-data-url", EventName: "Cleanup"})

	assert.Equal(t, domain.KindUpstreamUnprocessable, domain.KindOf(err))
	model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestExtract_UpstreamErrorsPropagateTyped(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind domain.ErrorKind
	}{
		{"rate limited", extraction.NewRateLimitError("gateway", errors.New("429"), 0), domain.KindUpstreamRateLimited},
		{"payment", &extraction.PaymentRequiredError{Provider: "gateway", Err: errors.New("402")}, domain.KindUpstreamPaymentRequired},
		{"status", &extraction.StatusError{Provider: "gateway", StatusCode: 503}, domain.KindUpstreamGenericFailure},
		{"unavailable", &extraction.UnavailableError{Provider: "gateway", Err: context.DeadlineExceeded}, domain.KindUpstreamGenericFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, model := setupExtractionService()
			model.On("Complete", mock.Anything, mock.Anything).Return(nil, tt.err)

			result, err := svc.Extract(context.Background(), domain.ExtractionRequest{MeetingNotes: "x", EventName: "y"})

			assert.Nil(t, result)
			assert.Equal(t, tt.kind, domain.KindOf(err))
			model.AssertNumberOfCalls(t, "Complete", 1)
		})
	}
}

func TestExtract_UnavailableKeepsSentinel(t *testing.T) {
	svc, model := setupExtractionService()
	model.On("Complete", mock.Anything, mock.Anything).Return(nil, &extraction.UnavailableError{Provider: "gateway", Err: errors.New("timeout")})

	_, err := svc.Extract(context.Background(), domain.ExtractionRequest{MeetingNotes: "x", EventName: "y"})

	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}

func TestExtract_InvalidModelOutput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "Here are the attendees: Sara"},
		{"missing contributions", `{"extractedData":[{"name":"Sara"}]}`},
		{"wrong root", `{"attendees":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, model := setupExtractionService()
			modelReturns(model, tt.text)

			result, err := svc.Extract(context.Background(), domain.ExtractionRequest{MeetingNotes: "x", EventName: "y"})

			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrInvalidModelOutput))
		})
	}
}

func TestExtract_NoModelConfigured(t *testing.T) {
	svc := service.NewExtractionService(nil, nil)

	_, err := svc.Extract(context.Background(), domain.ExtractionRequest{MeetingNotes: "x", EventName: "y"})

	assert.False(t, svc.Ready())
	assert.True(t, errors.Is(err, domain.ErrNoModelConfigured))
}

func TestExtractAttendance_DefaultsDesignation(t *testing.T) {
	svc, model := setupExtractionService()
	modelReturns(model, `{"attendees":[{"name":"Sara Lim","designation":""},{"name":"John Tan","designation":"Event Lead"},{"name":"  ","designation":"Ghost"}]}`)

	result, err := svc.ExtractAttendance(context.Background(), domain.AttendanceRequest{
		MeetingNotes: "Sara Lim\nJohn Tan, Event Lead\nMary (absent)",
		EventName:    "Town Hall",
	})

	require.NoError(t, err)
	assert.Equal(t, "Town Hall", result.EventName)
	assert.Equal(t, []domain.Attendee{
		{Name: "Sara Lim", Designation: domain.DefaultDesignation},
		{Name: "John Tan", Designation: "Event Lead"},
	}, result.Attendees)
}

func TestExtractAttendance_MissingFields(t *testing.T) {
	svc, model := setupExtractionService()

	_, err := svc.ExtractAttendance(context.Background(), domain.AttendanceRequest{EventName: "Town Hall"})

	assert.True(t, errors.Is(err, domain.ErrMissingFields))
	model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnalyzeCompetencies_Success(t *testing.T) {
	svc, model := setupExtractionService()
	modelReturns(model, `{"competencies":[{"skill":"Leadership","proficiency":"Advanced","evidence":"led 20 volunteers","impact":"event ran on time"}]}`)

	result, err := svc.AnalyzeCompetencies(context.Background(), domain.CompetencyRequest{Accomplishments: "Led 20 volunteers"})

	require.NoError(t, err)
	require.Len(t, result.Competencies, 1)
	assert.Equal(t, domain.ProficiencyAdvanced, result.Competencies[0].Proficiency)
}

func TestAnalyzeCompetencies_RejectsUnknownProficiency(t *testing.T) {
	svc, model := setupExtractionService()
	modelReturns(model, `{"competencies":[{"skill":"Leadership","proficiency":"Godlike","evidence":"e","impact":"i"}]}`)

	_, err := svc.AnalyzeCompetencies(context.Background(), domain.CompetencyRequest{Accomplishments: "Led"})

	assert.True(t, errors.Is(err, domain.ErrInvalidModelOutput))
}

func TestAnalyzeCompetencies_Blank(t *testing.T) {
	svc, _ := setupExtractionService()

	_, err := svc.AnalyzeCompetencies(context.Background(), domain.CompetencyRequest{Accomplishments: "  "})

	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
