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

type InterviewController struct {
	interviewSvc service.InterviewService
}

func NewInterviewController(interviewSvc service.InterviewService) *InterviewController {
	return &InterviewController{interviewSvc: interviewSvc}
}

func (c *InterviewController) RegisterRoutes(apiV1 *gin.RouterGroup) {
	interviews := apiV1.Group("/interviews")
	interviews.POST("/start", c.StartInterview)
	interviews.POST("/answer", c.SubmitAnswer)
	interviews.GET("/history", c.GetInterviewHistory)
	interviews.GET("/:session_id/messages", c.GetTranscript)
}

// StartInterview godoc
// @Summary Start an AI interview for a skill
// @Description Gathers GitHub and resume context, generates the full interview plan, and returns the opening question. Fails without creating a session if plan generation fails.
// @Tags Interviews
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Param request body dto.StartInterviewRequest true "Skill and optional GitHub profile URL"
// @Success 201 {object} dto.StartInterviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 502 {object} dto.ErrorResponse "Interview plan generation failed"
// @Router /interviews/start [post]
func (c *InterviewController) StartInterview(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	var req dto.StartInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind StartInterviewRequest")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := c.interviewSvc.Start(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("skill", req.Skill).Msg("Failed to start interview")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer to the current interview question
// @Description Scores the answer, appends it to the transcript, and either advances to the next question or completes the interview.
// @Tags Interviews
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Param request body dto.SubmitInterviewAnswerRequest true "Session ID and answer text"
// @Success 200 {object} dto.SubmitInterviewAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or empty answer"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 404 {object} dto.ErrorResponse "Session not found for this user"
// @Failure 409 {object} dto.ErrorResponse "Interview is not active"
// @Router /interviews/answer [post]
func (c *InterviewController) SubmitAnswer(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitInterviewAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitInterviewAnswerRequest")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := c.interviewSvc.SubmitAnswer(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("sessionID", req.SessionID).Msg("Failed to submit interview answer")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetInterviewHistory godoc
// @Summary List the user's recent interview sessions
// @Tags Interviews
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Success 200 {array} dto.InterviewSessionSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interviews/history [get]
func (c *InterviewController) GetInterviewHistory(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	sessions, err := c.interviewSvc.History(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch interview history")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve interview history"})
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetTranscript godoc
// @Summary Get the full message transcript of an interview session
// @Tags Interviews
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Param session_id path int true "Interview session ID"
// @Success 200 {object} dto.InterviewTranscriptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 404 {object} dto.ErrorResponse "Session not found for this user"
// @Router /interviews/{session_id}/messages [get]
func (c *InterviewController) GetTranscript(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	sessionID, err := strconv.ParseUint(ctx.Param("session_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid session ID format"})
		return
	}

	transcript, err := c.interviewSvc.Transcript(userID, uint(sessionID))
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint64("sessionID", sessionID).Msg("Failed to fetch interview transcript")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, transcript)
}
