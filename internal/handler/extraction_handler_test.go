package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/extraction"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/ingest"
	"volunteerhub/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()
}

func newExtractionHandler(svc *mocks.MockExtractionService, maxBytes int64) *handler.ExtractionHandler {
	ing := ingest.New(ingest.Options{MaxBytes: maxBytes, ImageMaxEdge: 1600, JPEGQuality: 80}, nil)
	return handler.NewExtractionHandler(svc, ing)
}

func postJSON(h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestExtractionHandler_Extract_Success(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 1<<20)

	want := &domain.ExtractionResult{ExtractedData: []domain.ExtractedPerson{
		{Name: "Sara", Contributions: []domain.Contribution{{Highlight: "Helped move chairs"}}},
	}}
	svc.On("Extract", mock.Anything, domain.ExtractionRequest{MeetingNotes: "Sara, help move chairs", EventName: "Cleanup"}).
		Return(want, nil)

	w := postJSON(h.Extract, `{"meetingNotes":"Sara, help move chairs","eventName":"Cleanup"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"extractedData":[{"name":"Sara","designation":"","identifier":"","contributions":[{"highlight":"Helped move chairs"}]}]}`,
		w.Body.String())
	svc.AssertExpectations(t)
}

func TestExtractionHandler_Extract_BlankEventName(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 1<<20)

	w := postJSON(h.Extract, `{"meetingNotes":"Sara","eventName":"   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeError(t, w).Error)
	svc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtractionHandler_Extract_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing content", domain.ErrMissingFields, http.StatusBadRequest, "Missing required fields"},
		{"rate limited", extraction.NewRateLimitError("gateway", errors.New("429"), 0), http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a few moments."},
		{"payment", &extraction.PaymentRequiredError{Provider: "gateway", Err: errors.New("402")}, http.StatusPaymentRequired, "Credits required. Please add credits to your workspace."},
		{"unprocessable", domain.ErrUnprocessable, http.StatusBadRequest, "Content could not be processed"},
		{"upstream status", &extraction.StatusError{Provider: "gateway", StatusCode: 503}, http.StatusInternalServerError, "Failed to extract data"},
		{"invalid output", &extraction.OutputError{Cause: errors.New("not json")}, http.StatusInternalServerError, "Failed to extract data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockExtractionService)
			h := newExtractionHandler(svc, 1<<20)
			svc.On("Extract", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := postJSON(h.Extract, `{"meetingNotes":"x","eventName":"y"}`)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, decodeError(t, w).Error)
		})
	}
}

func uploadRequest(t *testing.T, filename string, content []byte, eventName string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write(content)
	}
	if eventName != "" {
		require.NoError(t, writer.WriteField("eventName", eventName))
	}
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/extract/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestExtractionHandler_Upload_TextFile(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 1<<20)
	svc.On("Extract", mock.Anything, domain.ExtractionRequest{
		MeetingNotes: "John Tan, Event Lead",
		EventName:    "Town Hall",
		FileType:     "text/plain",
	}).Return(&domain.ExtractionResult{ExtractedData: []domain.ExtractedPerson{}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = uploadRequest(t, "notes.txt", []byte("John Tan, Event Lead\n"), "Town Hall")
	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"extractedData":[]}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestExtractionHandler_Upload_TooLarge(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 16)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = uploadRequest(t, "notes.txt", bytes.Repeat([]byte("a"), 64), "Town Hall")
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File exceeds maximum allowed size", decodeError(t, w).Error)
	svc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtractionHandler_Upload_UnsupportedType(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 1<<20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = uploadRequest(t, "slides.pptx", []byte("PK\x03\x04\x14\x00\x00\x00"), "Town Hall")
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unsupported file type", decodeError(t, w).Error)
}

func TestExtractionHandler_Upload_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		eventName string
	}{
		{"no file", "", "Town Hall"},
		{"no event", "notes.txt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockExtractionService)
			h := newExtractionHandler(svc, 1<<20)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = uploadRequest(t, tt.filename, []byte("Sara"), tt.eventName)
			h.Upload(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "MISSING_FIELDS", decodeError(t, w).Code)
		})
	}
}

func TestExtractionHandler_Attendance(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 1<<20)
	svc.On("ExtractAttendance", mock.Anything, domain.AttendanceRequest{MeetingNotes: "Sara Lim", EventName: "Town Hall"}).
		Return(&domain.AttendanceResult{
			Attendees: []domain.Attendee{{Name: "Sara Lim", Designation: "Member"}},
			EventName: "Town Hall",
		}, nil)

	w := postJSON(h.Attendance, `{"meetingNotes":"Sara Lim","eventName":"Town Hall"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"attendees":[{"name":"Sara Lim","designation":"Member"}],"eventName":"Town Hall"}`, w.Body.String())
}

func TestExtractionHandler_Attendance_MissingNotes(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 1<<20)

	w := postJSON(h.Attendance, `{"eventName":"Town Hall"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ExtractAttendance", mock.Anything, mock.Anything)
}

func TestExtractionHandler_Competencies(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	h := newExtractionHandler(svc, 1<<20)
	svc.On("AnalyzeCompetencies", mock.Anything, domain.CompetencyRequest{Accomplishments: "Led 20 volunteers"}).
		Return(nil, &extraction.PaymentRequiredError{Provider: "gateway", Err: errors.New("402")})

	w := postJSON(h.Competencies, `{"accomplishments":"Led 20 volunteers"}`)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "PAYMENT_REQUIRED", decodeError(t, w).Code)
}
