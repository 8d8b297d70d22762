package controller

import (
	"errors"
	"jeeprep_backend/internal/service"
	"jeeprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	AssistantService *service.AssistantService
	AuthService      *service.AuthService
}

func NewAssistantController(assistantService *service.AssistantService, authService *service.AuthService) *AssistantController {
	return &AssistantController{
		AssistantService: assistantService,
		AuthService:      authService,
	}
}

// swagger:model AssistantRequest
type AssistantRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
}

// Hint godoc
// @Summary Get an AI hint for a question
// @Description A failed AI call returns 200 with the error embedded in the text
// @Tags assistant
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AssistantRequest true "question reference"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assistant/hint [post]
func (c *AssistantController) Hint(ctx *gin.Context) {
	var req AssistantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	text, err := c.AssistantService.Hint(req.QuestionID)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"text": text})
}

// DeeperExplanation godoc
// @Summary Get an AI deeper explanation for a question
// @Tags assistant
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AssistantRequest true "question reference"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assistant/explanation [post]
func (c *AssistantController) DeeperExplanation(ctx *gin.Context) {
	var req AssistantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	text, err := c.AssistantService.DeeperExplanation(req.QuestionID)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"text": text})
}

// StudyFocus godoc
// @Summary Get an AI study-focus suggestion from the profile stats
// @Tags assistant
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/assistant/study-focus [post]
func (c *AssistantController) StudyFocus(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	text, err := c.AssistantService.StudyFocus(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"text": text})
}
