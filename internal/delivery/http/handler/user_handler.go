package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goldwen/matching-backend/internal/usecase/personality"
	"github.com/goldwen/matching-backend/internal/usecase/user"
)

type UserHandler struct {
	userUseCase        *user.UserUseCase
	personalityUseCase *personality.PersonalityUseCase
}

func NewUserHandler(
	userUseCase *user.UserUseCase,
	personalityUseCase *personality.PersonalityUseCase,
) *UserHandler {
	return &UserHandler{
		userUseCase:        userUseCase,
		personalityUseCase: personalityUseCase,
	}
}

// GetUser handles GET /users/:user_id
// @Summary Get user
// @Description Get a matching user's attributes
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	u, err := h.userUseCase.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// UpdatePremiumRequest carries the subscription flag from the main API.
type UpdatePremiumRequest struct {
	IsPremium *bool `json:"is_premium" binding:"required"`
}

// UpdatePremium handles PUT /users/:user_id/premium
// @Summary Update premium status
// @Description Set the subscription flag that determines the daily choice quota
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body UpdatePremiumRequest true "Premium flag"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id}/premium [put]
func (h *UserHandler) UpdatePremium(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	var req UpdatePremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	u, err := h.userUseCase.SetPremium(c.Request.Context(), userID, *req.IsPremium)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// SubmitQuestionnaireRequest is a full personality questionnaire.
type SubmitQuestionnaireRequest struct {
	Responses []personality.ResponseInput `json:"responses" binding:"required"`
}

// SubmitQuestionnaire handles POST /users/:user_id/personality
// @Summary Submit personality questionnaire
// @Description Replace the user's personality answers wholesale
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body SubmitQuestionnaireRequest true "Questionnaire answers"
// @Success 201 {array} domain.PersonalityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id}/personality [post]
func (h *UserHandler) SubmitQuestionnaire(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	var req SubmitQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	responses, err := h.personalityUseCase.Submit(c.Request.Context(), userID, req.Responses)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, responses)
}

// GetQuestionnaire handles GET /users/:user_id/personality
// @Summary Get personality responses
// @Description Get the user's stored questionnaire answers
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} domain.PersonalityResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{user_id}/personality [get]
func (h *UserHandler) GetQuestionnaire(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	responses, err := h.personalityUseCase.GetResponses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}
