package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/service"
)

type CompetitionService interface {
	GetCompetitions(ctx context.Context) ([]domain.Competition, error)
	GetCompetitionBySlug(ctx context.Context, slug string) (domain.Competition, error)
}

type CompetitionHandler struct {
	svc CompetitionService
}

func NewCompetitionHandler(svc CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{
		svc: svc,
	}
}

// HandleListCompetitions godoc
// @Summary      List open competitions
// @Tags         competitions
// @Produce      json
// @Success      200  {object}  []domain.Competition
// @Failure      500  {object}  response.Err
// @Router       /competitions [get]
func (h *CompetitionHandler) HandleListCompetitions(ctx *gin.Context) {
	competitions, err := h.svc.GetCompetitions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCompetitions -> h.svc.GetCompetitions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, competitions)
}

// HandleGetCompetition godoc
// @Summary      Get one competition by its slug
// @Tags         competitions
// @Produce      json
// @Param        slug   path      string  true  "competition slug"
// @Success      200   {object}   domain.Competition
// @Failure      404   {object}   response.Err
// @Failure      500   {object}   response.Err
// @Router       /competitions/{slug} [get]
func (h *CompetitionHandler) HandleGetCompetition(ctx *gin.Context) {
	slug := ctx.Param("slug")

	competition, err := h.svc.GetCompetitionBySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrCompetitionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("competition", "slug", slug))

			return
		}

		err = fmt.Errorf("v1.HandleGetCompetition -> h.svc.GetCompetitionBySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, competition)
}
