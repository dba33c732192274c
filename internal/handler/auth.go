package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/config"
	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/repository"
	"github.com/iliyamo/cinema-booking/internal/utils"
)

// UserStore is implemented by *repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
	Log   *logger.Logger
}

func NewAuthHandler(cfg config.Config, u UserStore, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &AuthHandler{Cfg: cfg, Users: u, Log: log.WithComponent("auth")}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type authResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	Role    string    `json:"role"`
}

// Register creates a USER account and returns an access token right away.
// Admin accounts are provisioned out of band.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user already exists", "code": "email_exists"})
		}
		h.Log.WithError(err).ErrorContext(ctx, "create user failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed", "code": "store_failure"})
	}
	return h.issue(c, http.StatusCreated, uid, model.RoleUser)
}

// Login verifies the credentials and returns a new access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		h.Log.WithError(err).ErrorContext(ctx, "load user failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed", "code": "store_failure"})
	}
	if err != nil || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials", "code": "unauthenticated"})
	}
	return h.issue(c, http.StatusOK, u.ID, u.Role)
}

func (h *AuthHandler) issue(c echo.Context, status int, userID uint64, role string) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.WithError(err).Error("sign token failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed", "code": "token_failure"})
	}
	return c.JSON(status, authResp{Token: access.Token, Expires: access.Exp, Role: role})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	actor := actorFrom(c)
	if actor.UserID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "code": "unauthenticated"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found", "code": "not_found"})
		}
		h.Log.WithError(err).ErrorContext(c.Request().Context(), "load user failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error", "code": "store_failure"})
	}
	return c.JSON(http.StatusOK, u)
}
