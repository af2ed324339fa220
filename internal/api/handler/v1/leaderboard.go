package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/domain"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Get the ranked standings
// @Tags         leaderboard
// @Produce      json
// @Success      200  {object}  []domain.LeaderboardEntry
// @Failure      500  {object}  response.Err
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	board, err := h.svc.GetLeaderboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.svc.GetLeaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, board)
}
