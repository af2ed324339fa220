package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/request"
	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/service"
)

type EntryService interface {
	GetUserEntries(ctx context.Context, userID uint) ([]service.ClassifiedEntry, error)
	CompleteStep(ctx context.Context, userID, entryID uint, step int) (domain.Entry, error)
	SetBookmarked(ctx context.Context, userID, entryID uint, bookmarked bool) (domain.Entry, error)
	SetLiked(ctx context.Context, userID, entryID uint, liked bool) (domain.Entry, error)
	GetUserWins(ctx context.Context, userID uint) ([]domain.Win, error)
}

type EntryHandler struct {
	svc EntryService
}

func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

// HandleListEntries godoc
// @Summary      List the current user's entries with their states
// @Tags         entries
// @Produce      json
// @Success      200  {object}  []service.ClassifiedEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /entries [get]
func (h *EntryHandler) HandleListEntries(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	entries, err := h.svc.GetUserEntries(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEntries -> h.svc.GetUserEntries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleCompleteStep godoc
// @Summary      Mark one entry step as completed
// @Tags         entries
// @Produce      json
// @Param        entryID   path      int  true  "entry ID"
// @Param        stepIdx   path      int  true  "zero-based step index"
// @Success      200      {object}   domain.Entry
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /entries/{entryID}/steps/{stepIdx}/complete [post]
func (h *EntryHandler) HandleCompleteStep(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	entryID, err := parseIDParam(ctx, "entryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	step, err := strconv.Atoi(ctx.Param("stepIdx"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("stepIdx: %w", err)))

		return
	}

	entry, err := h.svc.CompleteStep(ctx.Request.Context(), userID, entryID, step)
	if err != nil {
		h.renderEntryErr(ctx, "HandleCompleteStep", entryID, err)

		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleSetBookmark godoc
// @Summary      Bookmark or unbookmark an entry
// @Tags         entries
// @Produce      json
// @Param        entryID   path      int  true  "entry ID"
// @Param        request   body      request.SetBookmarkRequest true "request body"
// @Success      200      {object}   domain.Entry
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /entries/{entryID}/bookmark [post]
func (h *EntryHandler) HandleSetBookmark(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	entryID, err := parseIDParam(ctx, "entryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.SetBookmarkRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	entry, err := h.svc.SetBookmarked(ctx.Request.Context(), userID, entryID, req.Bookmarked)
	if err != nil {
		h.renderEntryErr(ctx, "HandleSetBookmark", entryID, err)

		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleSetLike godoc
// @Summary      Like or unlike an entry
// @Tags         entries
// @Produce      json
// @Param        entryID   path      int  true  "entry ID"
// @Param        request   body      request.SetLikeRequest true "request body"
// @Success      200      {object}   domain.Entry
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /entries/{entryID}/like [post]
func (h *EntryHandler) HandleSetLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	entryID, err := parseIDParam(ctx, "entryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.SetLikeRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	entry, err := h.svc.SetLiked(ctx.Request.Context(), userID, entryID, req.Liked)
	if err != nil {
		h.renderEntryErr(ctx, "HandleSetLike", entryID, err)

		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleListWins godoc
// @Summary      List the current user's wins
// @Tags         entries
// @Produce      json
// @Success      200  {object}  []domain.Win
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /wins [get]
func (h *EntryHandler) HandleListWins(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	wins, err := h.svc.GetUserWins(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListWins -> h.svc.GetUserWins -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, wins)
}

func (h *EntryHandler) renderEntryErr(ctx *gin.Context, op string, entryID uint, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.RenderErr(ctx, response.ErrNotFound("entry", "ID", entryID))
	case errors.Is(err, service.ErrNotEntryOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied())
	case errors.Is(err, service.ErrInvalidStep):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
