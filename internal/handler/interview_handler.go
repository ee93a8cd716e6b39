package handler

import (
	"interview-agent/internal/domain"
	"interview-agent/internal/dto"
	"interview-agent/internal/middleware"
	"interview-agent/internal/service"

	"github.com/gofiber/fiber/v2"
)

// InterviewHandler handles generation and history requests
type InterviewHandler struct {
	interviews service.InterviewService
	history    service.HistoryService
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(interviews service.InterviewService, history service.HistoryService) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
		history:    history,
	}
}

// Generate godoc
// @Summary Generate interview questions
// @Description Generates basic, intermediate and expert question/answer pairs for a role and stores them
// @Tags interview
// @Accept json
// @Produce json
// @Param request body dto.AgentRequest true "Role"
// @Success 201 {object} dto.InterviewRecordResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /agent [post]
func (h *InterviewHandler) Generate(c *fiber.Ctx) error {
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{
			domain.NewInvalidValueError("body", nil, "request body must be a JSON object with job_title and job_description"),
		}
	}

	record, err := h.interviews.HandleAgentRequest(c.UserContext(), req.JobTitle, req.JobDescription)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ToInterviewRecordResponse(record))
}

// History godoc
// @Summary List generated interviews
// @Description Returns stored records newest first, optionally filtered by exact job title
// @Tags interview
// @Produce json
// @Param job_title query string false "Exact job title (case-sensitive)"
// @Param limit query int false "Maximum number of records (default 50, max 200)"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *InterviewHandler) History(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.LocalHistoryLimit).(int)

	records, err := h.history.ListHistory(c.UserContext(), domain.HistoryFilter{
		JobTitle: c.Query("job_title"),
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.ToHistoryResponse(records))
}

// GetInterview godoc
// @Summary Get a generated interview
// @Tags interview
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.InterviewRecordResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.LocalRecordID).(int64)

	record, err := h.history.GetRecord(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(dto.ToInterviewRecordResponse(record))
}
