package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/internal/controller"
	"github.com/skilltrek/backend/internal/dto"
	"github.com/skilltrek/backend/internal/service"
)

type QuestionController struct {
	questionSvc service.AdminQuestionService
}

func NewQuestionController(questionSvc service.AdminQuestionService) *QuestionController {
	return &QuestionController{questionSvc: questionSvc}
}

func (c *QuestionController) RegisterRoutes(apiV1 *gin.RouterGroup) {
	adminGroup := apiV1.Group("/admin")
	adminGroup.POST("/questions", c.CreateQuestion)
}

// CreateQuestion godoc
// @Summary (Admin) Author a question into the bank
// @Description Creates a manually authored multiple-choice question. It becomes eligible for assessment snapshots immediately.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionDTO true "Question data with exactly 4 options"
// @Success 201 {object} dto.CreateQuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateQuestionDTO")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := c.questionSvc.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Str("skill", req.Skill).Msg("Failed to create manual question")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
