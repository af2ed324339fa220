package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/request"
	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/api/middleware"
	"prizedraw-api/internal/config"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/pkg/jwthelper"
	"prizedraw-api/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new user
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.RegisterResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	req := request.RegisterRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Mascot:   req.Mascot,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) || errors.Is(err, service.ErrUserUsernameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := h.issueSession(ctx, user)
	if err != nil {
		err = fmt.Errorf("v1.HandleRegister -> h.issueSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.RegisterResponse{
		Token: token,
		User:  user,
	})
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials())

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := h.issueSession(ctx, user)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> h.issueSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
		Admin: user.IsAdmin,
	})
}

// HandleLogout godoc
// @Summary      Logout the current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Router       /logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookies(), true)

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "logged out"})
}

// issueSession mints the token and sets it as an httpOnly cookie. The
// isAdmin claim inside is only an optimistic hint.
func (h *AuthHandler) issueSession(ctx *gin.Context, user domain.User) (string, error) {
	token, err := jwthelper.GenerateToken(
		[]byte(h.conf.JWTSigningKey), user.ID, user.Username, user.IsAdmin, ctx.Request.UserAgent())
	if err != nil {
		return "", err
	}

	ctx.SetCookie(middleware.SessionCookie, token, int((24 * time.Hour).Seconds()), "/", "", h.secureCookies(), true)

	return token, nil
}

func (h *AuthHandler) secureCookies() bool {
	return h.conf.Environment == "production"
}
