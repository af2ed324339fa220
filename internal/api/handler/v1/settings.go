package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/service"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (service.SiteSettings, error)
}

type SettingsHandler struct {
	svc SettingsService
}

func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
	}
}

// HandleGetSettings godoc
// @Summary      Get the public site settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  service.SiteSettings
// @Failure      500  {object}  response.Err
// @Router       /settings [get]
func (h *SettingsHandler) HandleGetSettings(ctx *gin.Context) {
	settings, err := h.svc.GetSettings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSettings -> h.svc.GetSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandleGetLogo godoc
// @Summary      Get the site logo URL
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.UploadResponse
// @Failure      500  {object}  response.Err
// @Router       /settings/logo [get]
func (h *SettingsHandler) HandleGetLogo(ctx *gin.Context) {
	settings, err := h.svc.GetSettings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLogo -> h.svc.GetSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.UploadResponse{URL: settings.LogoURL})
}

// HandleGetBanner godoc
// @Summary      Get the site banner URL
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.UploadResponse
// @Failure      500  {object}  response.Err
// @Router       /settings/banner [get]
func (h *SettingsHandler) HandleGetBanner(ctx *gin.Context) {
	settings, err := h.svc.GetSettings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBanner -> h.svc.GetSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.UploadResponse{URL: settings.BannerURL})
}
