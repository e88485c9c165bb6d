package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/usecase/choice"
	"github.com/goldwen/matching-backend/internal/usecase/compat"
	"github.com/goldwen/matching-backend/internal/usecase/selection"
)

type MatchingHandler struct {
	selectionUseCase *selection.SelectionUseCase
	compatUseCase    *compat.CompatUseCase
	choiceUseCase    *choice.ChoiceUseCase
}

func NewMatchingHandler(
	selectionUseCase *selection.SelectionUseCase,
	compatUseCase *compat.CompatUseCase,
	choiceUseCase *choice.ChoiceUseCase,
) *MatchingHandler {
	return &MatchingHandler{
		selectionUseCase: selectionUseCase,
		compatUseCase:    compatUseCase,
		choiceUseCase:    choiceUseCase,
	}
}

// GetDailySelection handles GET /matching/daily-selection/:user_id
// @Summary Get daily selection
// @Description Get (or lazily generate) today's ranked candidates for a user
// @Tags matching
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} selection.DailySelectionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matching/daily-selection/{user_id} [get]
func (h *MatchingHandler) GetDailySelection(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	resp, err := h.selectionUseCase.GetOrGenerate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateSelection handles POST /matching/generate-selection/:user_id
// @Summary Force regenerate daily selection
// @Description Recompute today's selection, replacing any existing one
// @Tags matching
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} selection.DailySelectionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matching/generate-selection/{user_id} [post]
func (h *MatchingHandler) GenerateSelection(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	resp, err := h.selectionUseCase.ForceRegenerate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CompatibilityScoreRequest asks for the score of one user pair.
type CompatibilityScoreRequest struct {
	User1ID int `json:"user1_id" binding:"required"`
	User2ID int `json:"user2_id" binding:"required"`
}

// CompatibilityScoreResponse carries the computed score.
type CompatibilityScoreResponse struct {
	User1ID            int       `json:"user1_id"`
	User2ID            int       `json:"user2_id"`
	CompatibilityScore float64   `json:"compatibility_score"`
	CalculatedAt       time.Time `json:"calculated_at"`
}

// CalculateCompatibility handles POST /matching/compatibility-score
// @Summary Compute compatibility score
// @Description Cosine similarity of two users' personality vectors
// @Tags matching
// @Accept json
// @Produce json
// @Param request body CompatibilityScoreRequest true "User pair"
// @Success 200 {object} CompatibilityScoreResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matching/compatibility-score [post]
func (h *MatchingHandler) CalculateCompatibility(c *gin.Context) {
	var req CompatibilityScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	score, err := h.compatUseCase.ComputeCompatibility(c.Request.Context(), req.User1ID, req.User2ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompatibilityScoreResponse{
		User1ID:            req.User1ID,
		User2ID:            req.User2ID,
		CompatibilityScore: score,
		CalculatedAt:       time.Now().UTC(),
	})
}

// UserChoiceRequest records a pick from the daily selection.
type UserChoiceRequest struct {
	ChosenUserID int `json:"chosen_user_id" binding:"required"`
}

// RecordChoice handles POST /matching/user-choice/:user_id
// @Summary Record a choice
// @Description Record a user's pick, enforcing the daily quota and detecting mutual matches
// @Tags matching
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body UserChoiceRequest true "Chosen user"
// @Success 200 {object} choice.ChoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matching/user-choice/{user_id} [post]
func (h *MatchingHandler) RecordChoice(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	var req UserChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.choiceUseCase.RecordChoice(c.Request.Context(), userID, req.ChosenUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListChoices handles GET /matching/user-choices/:user_id
// @Summary Choice history
// @Description List a user's choices, most recent first
// @Tags matching
// @Produce json
// @Param user_id path int true "User ID"
// @Param limit query int false "Max results" default(20)
// @Success 200 {array} domain.Choice
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matching/user-choices/{user_id} [get]
func (h *MatchingHandler) ListChoices(c *gin.Context) {
	userID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	choices, err := h.choiceUseCase.ListChoices(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, choices)
}

// MatchingCandidatesRequest asks for an ad hoc ranked candidate list.
type MatchingCandidatesRequest struct {
	UserID         int   `json:"user_id" binding:"required"`
	ExcludeUserIDs []int `json:"exclude_user_ids"`
	MaxResults     int   `json:"max_results"`
}

// GetMatchingCandidates handles POST /matching/candidates
// @Summary Ad hoc candidate ranking
// @Description Rank eligible candidates on demand, bypassing the persisted daily selection
// @Tags matching
// @Accept json
// @Produce json
// @Param request body MatchingCandidatesRequest true "Ranking request"
// @Success 200 {object} selection.RankedCandidatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matching/candidates [post]
func (h *MatchingHandler) GetMatchingCandidates(c *gin.Context) {
	var req MatchingCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.selectionUseCase.RankCandidates(c.Request.Context(), req.UserID, req.ExcludeUserIDs, req.MaxResults)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func pathUserID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, domain.ErrChosenUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "chosen user not found"})
	case errors.Is(err, domain.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "daily choice limit exceeded"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}
