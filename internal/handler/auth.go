package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/honeyflow/hive-api/internal/auth"
	"github.com/honeyflow/hive-api/internal/config"
	"github.com/honeyflow/hive-api/internal/middleware"
	"github.com/honeyflow/hive-api/internal/model"
	"github.com/honeyflow/hive-api/internal/repository"
	"github.com/honeyflow/hive-api/internal/utils"
)

// UserStore is the persistence surface the auth endpoints need. It is
// implemented by repository.UserRepo; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, email, password, fullName string, role auth.Role, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
	Codec *auth.TokenCodec

	// padHash is compared against when login hits an unknown email, so the
	// response takes a bcrypt comparison either way and timing does not
	// reveal whether an account exists.
	padHash string
}

func NewAuthHandler(cfg config.Config, users UserStore, codec *auth.TokenCodec) *AuthHandler {
	if users == nil || codec == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	pad, _ := utils.HashPassword("timing-pad", cfg.BcryptCost)
	return &AuthHandler{Cfg: cfg, Users: users, Codec: codec, padHash: pad}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"` // optional; defaults to BEEKEEPER
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
type authResp struct {
	Token string   `json:"token"`
	User  userPart `json:"user"`
}

// Register creates a user and returns a signed token immediately. A missing
// or blank role defaults to BEEKEEPER; an unrecognized role is rejected
// here at the boundary instead of being silently defaulted later.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing fields: email, password, fullName"})
	}

	role := auth.RoleBeekeeper
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := auth.ParseRole(req.Role)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid role"})
		}
		role = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.FullName, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	token, err := h.Codec.Sign(uid, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Token: token,
		User:  userPart{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role, CreatedAt: u.CreatedAt},
	})
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password produce the same response so the endpoint does not reveal
// which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing fields: email, password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a comparison so this branch costs the same as a wrong
			// password.
			utils.VerifyPassword(h.padHash, req.Password)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	token, err := h.Codec.Sign(u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token: token,
		User:  userPart{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role, CreatedAt: u.CreatedAt},
	})
}

// Me is a simple protected endpoint echoing the authenticated subject.
func (h *AuthHandler) Me(c echo.Context) error {
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"userId": ident.UserID,
		"role":   ident.Role,
	})
}
