package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/internal/controller"
	"github.com/skilltrek/backend/internal/dto"
	"github.com/skilltrek/backend/internal/service"
)

type SkillController struct {
	ledgerSvc service.SkillLedgerService
}

func NewSkillController(ledgerSvc service.SkillLedgerService) *SkillController {
	return &SkillController{ledgerSvc: ledgerSvc}
}

func (c *SkillController) RegisterRoutes(apiV1 *gin.RouterGroup) {
	apiV1.GET("/skills", c.GetSkills)
}

// GetSkills godoc
// @Summary List the user's skill ledger
// @Description Returns every skill on record for the user, verified or self-reported only.
// @Tags Skills
// @Produce json
// @Param X-User-ID header int true "Authenticated user ID"
// @Success 200 {array} model.UserSkill
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid user header"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /skills [get]
func (c *SkillController) GetSkills(ctx *gin.Context) {
	userID, ok := controller.CurrentUserID(ctx)
	if !ok {
		return
	}

	skills, err := c.ledgerSvc.ListForUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch skill ledger")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve skills"})
		return
	}
	ctx.JSON(http.StatusOK, skills)
}
