package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/filmlog/filmlog/internal/database"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RollHandler struct {
	logger *zap.Logger
}

func NewRollHandler(logger *zap.Logger) *RollHandler {
	return &RollHandler{logger: logger}
}

type rollRequest struct {
	Name      string `json:"name"`
	FilmStock string `json:"film_stock"`
	ISO       int    `json:"iso"`
	Camera    string `json:"camera"`
	Notes     string `json:"notes"`
}

// List handles GET /api/user/:user_id/rolls
func (h *RollHandler) List(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	query := `
		SELECT r.id, r.user_id, r.name, r.film_stock, r.iso, r.camera, r.notes,
		       COUNT(p.id) AS photo_count, r.created_at
		FROM rolls r
		LEFT JOIN photos p ON p.roll_id = r.id
		WHERE r.user_id = $1
		GROUP BY r.id
		ORDER BY r.created_at DESC
	`
	h.logger.Debug("executing roll list query",
		zap.String("sql", utils.FormatSQL(query, uid)),
	)

	rows, err := pool.Query(ctx, query, uid)
	if err != nil {
		h.logger.Error("failed to query rolls", zap.Error(err))
		utils.Error(c, 500, "Failed to fetch rolls")
		return
	}
	defer rows.Close()

	rolls := []database.Roll{}
	for rows.Next() {
		var r database.Roll
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.Name, &r.FilmStock, &r.ISO,
			&r.Camera, &r.Notes, &r.PhotoCount, &r.CreatedAt,
		); err != nil {
			h.logger.Error("failed to scan roll", zap.Error(err))
			utils.Error(c, 500, "Failed to fetch rolls")
			return
		}
		rolls = append(rolls, r)
	}

	c.JSON(200, gin.H{"rolls": rolls})
}

// Get handles GET /api/user/:user_id/rolls/:roll_id
func (h *RollHandler) Get(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	rollID, err := strconv.Atoi(c.Param("roll_id"))
	if err != nil {
		utils.Error(c, 404, "Roll not found")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	var r database.Roll
	err = pool.QueryRow(ctx, `
		SELECT r.id, r.user_id, r.name, r.film_stock, r.iso, r.camera, r.notes,
		       COUNT(p.id) AS photo_count, r.created_at
		FROM rolls r
		LEFT JOIN photos p ON p.roll_id = r.id
		WHERE r.id = $1 AND r.user_id = $2
		GROUP BY r.id
	`, rollID, uid).Scan(
		&r.ID, &r.UserID, &r.Name, &r.FilmStock, &r.ISO,
		&r.Camera, &r.Notes, &r.PhotoCount, &r.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Error(c, 404, "Roll not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to query roll", zap.Error(err))
		utils.Error(c, 500, "Failed to fetch roll")
		return
	}

	c.JSON(200, gin.H{"roll": r})
}

// Create handles POST /api/user/:user_id/rolls
func (h *RollHandler) Create(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}

	var req rollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.Error(c, 400, "Roll name is required")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	var r database.Roll
	err := pool.QueryRow(ctx, `
		INSERT INTO rolls (user_id, name, film_stock, iso, camera, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, film_stock, iso, camera, notes, created_at
	`, uid, req.Name, req.FilmStock, req.ISO, req.Camera, req.Notes).Scan(
		&r.ID, &r.UserID, &r.Name, &r.FilmStock, &r.ISO,
		&r.Camera, &r.Notes, &r.CreatedAt,
	)
	if err != nil {
		h.logger.Error("failed to insert roll", zap.Error(err))
		utils.Error(c, 500, "Failed to create roll")
		return
	}

	c.JSON(201, gin.H{"roll": r})
}

// Update handles PUT /api/user/:user_id/rolls/:roll_id
func (h *RollHandler) Update(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	rollID, err := strconv.Atoi(c.Param("roll_id"))
	if err != nil {
		utils.Error(c, 404, "Roll not found")
		return
	}

	var req rollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.Error(c, 400, "Roll name is required")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	tag, err := pool.Exec(ctx, `
		UPDATE rolls SET name = $1, film_stock = $2, iso = $3, camera = $4, notes = $5
		WHERE id = $6 AND user_id = $7
	`, req.Name, req.FilmStock, req.ISO, req.Camera, req.Notes, rollID, uid)
	if err != nil {
		h.logger.Error("failed to update roll", zap.Error(err))
		utils.Error(c, 500, "Failed to update roll")
		return
	}
	if tag.RowsAffected() == 0 {
		utils.Error(c, 404, "Roll not found")
		return
	}

	c.JSON(200, gin.H{"updated": true})
}

// Delete handles DELETE /api/user/:user_id/rolls/:roll_id
// Photos on the roll are removed by the schema's cascade.
func (h *RollHandler) Delete(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	rollID, err := strconv.Atoi(c.Param("roll_id"))
	if err != nil {
		utils.Error(c, 404, "Roll not found")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	tag, err := pool.Exec(ctx,
		"DELETE FROM rolls WHERE id = $1 AND user_id = $2", rollID, uid)
	if err != nil {
		h.logger.Error("failed to delete roll", zap.Error(err))
		utils.Error(c, 500, "Failed to delete roll")
		return
	}
	if tag.RowsAffected() == 0 {
		utils.Error(c, 404, "Roll not found")
		return
	}

	c.JSON(200, gin.H{"deleted": true})
}
