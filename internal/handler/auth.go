package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/filmlog/filmlog/internal/auth"
	"github.com/filmlog/filmlog/internal/config"
	"github.com/filmlog/filmlog/internal/database"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	logger     *zap.Logger
	issuer     *auth.Issuer
	bcryptCost int
}

func NewAuthHandler(logger *zap.Logger, issuer *auth.Issuer) *AuthHandler {
	cfg := config.Get()
	bcryptCost := 12 // fallback default
	if cfg != nil && cfg.Auth.BcryptCost > 0 {
		bcryptCost = cfg.Auth.BcryptCost
	}
	return &AuthHandler{
		logger:     logger,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  sessionUser `json:"user"`
}

type sessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		utils.Error(c, 400, "Username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		utils.Error(c, 500, "Failed to register user")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	var id int
	err = pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING
		 RETURNING id`,
		req.Username, hash,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Error(c, 409, "Username already taken")
		return
	}
	if err != nil {
		h.logger.Error("failed to insert user", zap.Error(err))
		utils.Error(c, 500, "Failed to register user")
		return
	}

	h.issueSession(c, 201, id, req.Username)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	var id int
	var hash string
	err := pool.QueryRow(ctx,
		"SELECT id, password_hash FROM users WHERE username = $1",
		strings.TrimSpace(req.Username),
	).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Error(c, 401, "Invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("failed to look up user", zap.Error(err))
		utils.Error(c, 500, "Failed to log in")
		return
	}

	if !auth.CheckPassword(hash, req.Password) {
		utils.Error(c, 401, "Invalid credentials")
		return
	}

	h.issueSession(c, 200, id, req.Username)
}

func (h *AuthHandler) issueSession(c *gin.Context, status, id int, username string) {
	userID := strconv.Itoa(id)
	token, err := h.issuer.Issue(userID, username)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		utils.Error(c, 500, "Failed to issue token")
		return
	}

	c.JSON(status, sessionResponse{
		Token: token,
		User:  sessionUser{ID: userID, Username: username},
	})
}
