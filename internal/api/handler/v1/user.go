package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/request"
	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, userID uint, mascot, email string) (domain.User, error)
}

type UserStatsService interface {
	GetUserStats(ctx context.Context, userID uint) (domain.UserStats, error)
}

type AdminChecker interface {
	Check(ctx context.Context, userID uint, optimistic bool) domain.AdminStatus
}

type UserHandler struct {
	svc   UserService
	stats UserStatsService
	gate  AdminChecker
}

func NewUserHandler(svc UserService, stats UserStatsService, gate AdminChecker) *UserHandler {
	return &UserHandler{
		svc:   svc,
		stats: stats,
		gate:  gate,
	}
}

// HandleGetSession godoc
// @Summary      Get the current session's user
// @Tags         user
// @Produce      json
// @Success      200  {object}  response.SessionResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /user [get]
func (h *UserHandler) HandleGetSession(ctx *gin.Context) {
	claims, ok := getClaims(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// The token outlived the account; treat it as no session.
			response.RenderErr(ctx, response.ErrUnauthorized())

			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SessionResponse{
		User:  user,
		Admin: h.gate.Check(ctx.Request.Context(), claims.UserID, claims.IsAdmin),
	})
}

// HandleUpdateProfile godoc
// @Summary      Update the current user's profile
// @Tags         user
// @Produce      json
// @Param        request   body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /user/profile [patch]
func (h *UserHandler) HandleUpdateProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	req := request.UpdateProfileRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.UpdateProfile(ctx.Request.Context(), userID, req.Mascot, req.Email)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetStats godoc
// @Summary      Get the current user's entry and win statistics
// @Tags         user
// @Produce      json
// @Success      200  {object}  domain.UserStats
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /user/stats [get]
func (h *UserHandler) HandleGetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	stats, err := h.stats.GetUserStats(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStats -> h.stats.GetUserStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}
