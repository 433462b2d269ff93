package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/internal/controller"
	"github.com/skilltrek/backend/internal/dto"
	"github.com/skilltrek/backend/internal/service"
)

type AssessmentController struct {
	assessmentSvc service.AssessmentService
}

func NewAssessmentController(assessmentSvc service.AssessmentService) *AssessmentController {
	return &AssessmentController{assessmentSvc: assessmentSvc}
}

func (c *AssessmentController) RegisterRoutes(apiV1 *gin.RouterGroup) {
	assessments := apiV1.Group("/assessments")
	assessments.POST("/generate", c.GenerateAssessment)
	assessments.POST("/submit", c.SubmitAssessment)
	assessments.GET("/history", c.GetAssessmentHistory)
	assessments.GET("/:session_id", c.GetAssessmentResult)
}

// GenerateAssessment godoc
// @Summary Start a new skill assessment
// @Description Creates an assessment session with a snapshot of questions for the given skill and level. Correct answers are never included in the response.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Param request body dto.GenerateAssessmentRequest true "Skill and self-reported level"
// @Success 201 {object} dto.GenerateAssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 502 {object} dto.ErrorResponse "Question generation unavailable and no fallback questions"
// @Router /assessments/generate [post]
func (c *AssessmentController) GenerateAssessment(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	var req dto.GenerateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GenerateAssessmentRequest")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := c.assessmentSvc.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("skill", req.Skill).Msg("Failed to create assessment")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAssessment godoc
// @Summary Submit answers for an assessment session
// @Description Scores the submitted answers against the session's question snapshot, finalizes the session, and updates the skill ledger.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Param request body dto.SubmitAssessmentRequest true "Session ID, answers, and tab switch count"
// @Success 200 {object} dto.SubmitAssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 404 {object} dto.ErrorResponse "Session not found for this user"
// @Failure 409 {object} dto.ErrorResponse "Session already submitted"
// @Router /assessments/submit [post]
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitAssessmentRequest")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := c.assessmentSvc.Submit(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("sessionID", req.SessionID).Msg("Failed to submit assessment")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAssessmentHistory godoc
// @Summary List the user's completed assessments
// @Tags Assessments
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Success 200 {array} dto.AssessmentSessionDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assessments/history [get]
func (c *AssessmentController) GetAssessmentHistory(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	sessions, err := c.assessmentSvc.History(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch assessment history")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve assessment history"})
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetAssessmentResult godoc
// @Summary Get a single assessment session
// @Tags Assessments
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Param session_id path int true "Assessment session ID"
// @Success 200 {object} dto.AssessmentSessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 404 {object} dto.ErrorResponse "Session not found for this user"
// @Router /assessments/{session_id} [get]
func (c *AssessmentController) GetAssessmentResult(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	sessionID, err := strconv.ParseUint(ctx.Param("session_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid session ID format"})
		return
	}

	result, err := c.assessmentSvc.Result(userID, uint(sessionID))
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint64("sessionID", sessionID).Msg("Failed to fetch assessment result")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
