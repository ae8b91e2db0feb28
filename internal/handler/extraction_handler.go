package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/ingest"
	"volunteerhub/internal/service"
)

// ExtractionHandler handles the model-backed extraction endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
	ingestor          *ingest.Ingestor
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService, ingestor *ingest.Ingestor) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService, ingestor: ingestor}
}

// Extract handles POST /api/v1/extract
// @Summary Extract attendees and contributions
// @Description Sends meeting notes or an image data URL to the model and returns attendees with evidence-bound contribution highlights
// @Tags extraction
// @Accept json
// @Produce json
// @Param body body domain.ExtractionRequest true "Notes or image plus event name"
// @Success 200 {object} ExtractionExample
// @Failure 400 {object} ErrorResponse "Missing required fields or unprocessable content"
// @Failure 402 {object} ErrorResponse "Credits required"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Extraction failed"
// @Router /extract [post]
func (h *ExtractionHandler) Extract(c *gin.Context) {
	var req domain.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrMissingFields)
		return
	}

	result, err := h.extractionService.Extract(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Upload handles POST /api/v1/extract/upload
// @Summary Extract from an uploaded file
// @Description Accepts a text, HTML, PDF, spreadsheet or image file; documents are converted to text and images are re-encoded before extraction
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Meeting notes file"
// @Param eventName formData string true "Event name"
// @Success 200 {object} domain.ExtractionResult
// @Failure 400 {object} ErrorResponse "Missing fields, unsupported type or file too large"
// @Failure 402 {object} ErrorResponse "Credits required"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Extraction failed"
// @Router /extract/upload [post]
func (h *ExtractionHandler) Upload(c *gin.Context) {
	eventName := strings.TrimSpace(c.PostForm("eventName"))
	file, header, err := c.Request.FormFile("file")
	if err != nil || eventName == "" {
		HandleError(c, domain.ErrMissingFields)
		return
	}
	defer func() { _ = file.Close() }()

	if err := h.ingestor.CheckSize(header.Size); err != nil {
		HandleError(c, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.ingestor.MaxBytes()+1))
	if err != nil {
		zap.L().Error("extractionHandler.Upload: reading upload", zap.String("filename", header.Filename), zap.Error(err))
		HandleError(c, domain.ErrUnprocessable)
		return
	}

	payload, err := h.ingestor.Decode(header.Filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	req := domain.ExtractionRequest{EventName: eventName, FileType: payload.FileType}
	if payload.IsImage() {
		req.ImageData = payload.ImageDataURL
	} else {
		req.MeetingNotes = payload.Text
	}

	result, err := h.extractionService.Extract(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Attendance handles POST /api/v1/attendance
// @Summary Extract attendance only
// @Description Lists the people present at an event; absentees are ignored and a missing designation defaults to Member
// @Tags extraction
// @Accept json
// @Produce json
// @Param body body domain.AttendanceRequest true "Meeting notes and event name"
// @Success 200 {object} domain.AttendanceResult
// @Failure 400 {object} ErrorResponse "Missing required fields"
// @Failure 402 {object} ErrorResponse "Credits required"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Extraction failed"
// @Router /attendance [post]
func (h *ExtractionHandler) Attendance(c *gin.Context) {
	var req domain.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrMissingFields)
		return
	}

	result, err := h.extractionService.ExtractAttendance(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Competencies handles POST /api/v1/competencies
// @Summary Analyze competencies
// @Description Identifies skills with a proficiency level, evidence and impact from a description of accomplishments
// @Tags extraction
// @Accept json
// @Produce json
// @Param body body domain.CompetencyRequest true "Accomplishments"
// @Success 200 {object} domain.CompetencyResult
// @Failure 400 {object} ErrorResponse "Missing required fields"
// @Failure 402 {object} ErrorResponse "Credits required"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Analysis failed"
// @Router /competencies [post]
func (h *ExtractionHandler) Competencies(c *gin.Context) {
	var req domain.CompetencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, domain.ErrMissingFields)
		return
	}

	result, err := h.extractionService.AnalyzeCompetencies(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
