package v1

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/request"
	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/service"
)

type AdminUserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetFlags(ctx context.Context, userID uint, isAdmin, isPremium bool) (domain.User, error)
}

type AdminCompetitionService interface {
	CreateCompetition(ctx context.Context, competition domain.Competition) (domain.Competition, error)
	GetCompetitionByID(ctx context.Context, id uint) (domain.Competition, error)
	UpdateCompetition(ctx context.Context, competition domain.Competition) (domain.Competition, error)
	SetCompetitionImage(ctx context.Context, id uint, imageURL string) (domain.Competition, error)
}

type AdminMediaService interface {
	UploadLogo(ctx context.Context, file *multipart.FileHeader) (string, error)
	UploadBanner(ctx context.Context, file *multipart.FileHeader) (string, error)
	UploadCompetitionImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type AdminHandler struct {
	users        AdminUserService
	competitions AdminCompetitionService
	media        AdminMediaService
	gate         AdminChecker
}

func NewAdminHandler(users AdminUserService, competitions AdminCompetitionService, media AdminMediaService, gate AdminChecker) *AdminHandler {
	return &AdminHandler{
		users:        users,
		competitions: competitions,
		media:        media,
		gate:         gate,
	}
}

// HandleAdminCheck godoc
// @Summary      Resolve the current session's admin status
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  response.Err
// @Router       /admin/check [get]
func (h *AdminHandler) HandleAdminCheck(ctx *gin.Context) {
	claims, ok := getClaims(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	status := h.gate.Check(ctx.Request.Context(), claims.UserID, claims.IsAdmin)

	ctx.JSON(http.StatusOK, gin.H{"isAdmin": status.Resolve()})
}

// HandleListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  []domain.User
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users [get]
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.users.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.users.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleUpdateUserFlags godoc
// @Summary      Update a user's admin and premium flags
// @Tags         admin
// @Produce      json
// @Param        userID    path      int  true  "user ID"
// @Param        request   body      request.UpdateUserFlagsRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/users/{userID} [patch]
func (h *AdminHandler) HandleUpdateUserFlags(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateUserFlagsRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.users.SetFlags(ctx.Request.Context(), userID, req.IsAdmin, req.IsPremium)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateUserFlags -> h.users.SetFlags -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleCreateCompetition godoc
// @Summary      Create a competition
// @Tags         admin
// @Produce      json
// @Param        request   body      request.CreateCompetitionRequest true "request body"
// @Success      201      {object}   domain.Competition
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/competitions [post]
func (h *AdminHandler) HandleCreateCompetition(ctx *gin.Context) {
	req := request.CreateCompetitionRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	competition, err := h.competitions.CreateCompetition(ctx.Request.Context(), domain.Competition{
		Title:        req.Title,
		Organizer:    req.Organizer,
		Description:  req.Description,
		Category:     req.Category,
		TicketPrice:  req.TicketPrice,
		TotalTickets: req.TotalTickets,
		Steps:        req.Steps,
		WinnersCount: req.WinnersCount,
		EndDate:      req.EndDate,
		DrawDate:     req.DrawDate,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCompetition -> h.competitions.CreateCompetition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, competition)
}

// HandleUpdateCompetition godoc
// @Summary      Update a competition
// @Tags         admin
// @Produce      json
// @Param        competitionID   path      int  true  "competition ID"
// @Param        request         body      request.UpdateCompetitionRequest true "request body"
// @Success      200            {object}   domain.Competition
// @Failure      400            {object}   response.Err
// @Failure      403            {object}   response.Err
// @Failure      404            {object}   response.Err
// @Failure      500            {object}   response.Err
// @Router       /admin/competitions/{competitionID} [patch]
func (h *AdminHandler) HandleUpdateCompetition(ctx *gin.Context) {
	competitionID, err := parseIDParam(ctx, "competitionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateCompetitionRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	competition, err := h.competitions.GetCompetitionByID(ctx.Request.Context(), competitionID)
	if err != nil {
		if errors.Is(err, service.ErrCompetitionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("competition", "ID", competitionID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateCompetition -> h.competitions.GetCompetitionByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	applyCompetitionPatch(&competition, req)

	updated, err := h.competitions.UpdateCompetition(ctx.Request.Context(), competition)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateCompetition -> h.competitions.UpdateCompetition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleUploadCompetitionImage godoc
// @Summary      Upload a competition image
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Param        competitionID   path      int   true  "competition ID"
// @Param        image           formData  file  true  "image file"
// @Success      200            {object}   domain.Competition
// @Failure      400            {object}   response.Err
// @Failure      403            {object}   response.Err
// @Failure      404            {object}   response.Err
// @Failure      500            {object}   response.Err
// @Router       /admin/competitions/{competitionID}/image [post]
func (h *AdminHandler) HandleUploadCompetitionImage(ctx *gin.Context) {
	competitionID, err := parseIDParam(ctx, "competitionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	url, err := h.media.UploadCompetitionImage(ctx.Request.Context(), file)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadCompetitionImage -> h.media.UploadCompetitionImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	competition, err := h.competitions.SetCompetitionImage(ctx.Request.Context(), competitionID, url)
	if err != nil {
		if errors.Is(err, service.ErrCompetitionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("competition", "ID", competitionID))

			return
		}

		err = fmt.Errorf("v1.HandleUploadCompetitionImage -> h.competitions.SetCompetitionImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, competition)
}

// HandleUploadLogo godoc
// @Summary      Upload the site logo
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Param        image   formData  file  true  "image file"
// @Success      200    {object}   response.UploadResponse
// @Failure      400    {object}   response.Err
// @Failure      403    {object}   response.Err
// @Failure      500    {object}   response.Err
// @Router       /admin/settings/logo [post]
func (h *AdminHandler) HandleUploadLogo(ctx *gin.Context) {
	h.uploadBranding(ctx, "HandleUploadLogo", h.media.UploadLogo)
}

// HandleUploadBanner godoc
// @Summary      Upload the site banner
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Param        image   formData  file  true  "image file"
// @Success      200    {object}   response.UploadResponse
// @Failure      400    {object}   response.Err
// @Failure      403    {object}   response.Err
// @Failure      500    {object}   response.Err
// @Router       /admin/settings/banner [post]
func (h *AdminHandler) HandleUploadBanner(ctx *gin.Context) {
	h.uploadBranding(ctx, "HandleUploadBanner", h.media.UploadBanner)
}

func (h *AdminHandler) uploadBranding(ctx *gin.Context, op string, upload func(context.Context, *multipart.FileHeader) (string, error)) {
	file, err := ctx.FormFile("image")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	url, err := upload(ctx.Request.Context(), file)
	if err != nil {
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.UploadResponse{URL: url})
}

func applyCompetitionPatch(competition *domain.Competition, req request.UpdateCompetitionRequest) {
	if req.Title != "" {
		competition.Title = req.Title
	}
	if req.Organizer != "" {
		competition.Organizer = req.Organizer
	}
	if req.Description != "" {
		competition.Description = req.Description
	}
	if req.Category != "" {
		competition.Category = req.Category
	}
	if req.TicketPrice > 0 {
		competition.TicketPrice = req.TicketPrice
	}
	if req.TotalTickets > 0 {
		competition.TotalTickets = req.TotalTickets
	}
	if !req.EndDate.IsZero() {
		competition.EndDate = req.EndDate
	}
	if !req.DrawDate.IsZero() {
		competition.DrawDate = req.DrawDate
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}

	return uint(id), nil
}
