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

type LensHandler struct {
	logger *zap.Logger
}

func NewLensHandler(logger *zap.Logger) *LensHandler {
	return &LensHandler{logger: logger}
}

// List handles GET /api/user/:user_id/lenses
func (h *LensHandler) List(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	rows, err := pool.Query(ctx,
		"SELECT id, name, focal_length, max_aperture FROM lenses WHERE user_id = $1 ORDER BY name", uid)
	if err != nil {
		h.logger.Error("failed to query lenses", zap.Error(err))
		utils.Error(c, 500, "Failed to fetch lenses")
		return
	}
	defer rows.Close()

	lenses := []database.Lens{}
	for rows.Next() {
		var l database.Lens
		if err := rows.Scan(&l.ID, &l.Name, &l.FocalLength, &l.MaxAperture); err != nil {
			h.logger.Error("failed to scan lens", zap.Error(err))
			utils.Error(c, 500, "Failed to fetch lenses")
			return
		}
		lenses = append(lenses, l)
	}

	c.JSON(200, gin.H{"lenses": lenses})
}

// Create handles POST /api/user/:user_id/lenses
func (h *LensHandler) Create(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		FocalLength string `json:"focal_length"`
		MaxAperture string `json:"max_aperture"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.Error(c, 400, "Lens name is required")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	var l database.Lens
	err := pool.QueryRow(ctx, `
		INSERT INTO lenses (user_id, name, focal_length, max_aperture)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, name) DO NOTHING
		RETURNING id, name, focal_length, max_aperture
	`, uid, req.Name, req.FocalLength, req.MaxAperture).Scan(
		&l.ID, &l.Name, &l.FocalLength, &l.MaxAperture)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Error(c, 409, "Lens already exists")
		return
	}
	if err != nil {
		h.logger.Error("failed to insert lens", zap.Error(err))
		utils.Error(c, 500, "Failed to create lens")
		return
	}

	c.JSON(201, gin.H{"lens": l})
}

// Delete handles DELETE /api/user/:user_id/lenses/:lens_id
// Photos referencing the lens keep their row; lens_id is set NULL by the
// schema.
func (h *LensHandler) Delete(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	lensID, err := strconv.Atoi(c.Param("lens_id"))
	if err != nil {
		utils.Error(c, 404, "Lens not found")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	tag, err := pool.Exec(ctx,
		"DELETE FROM lenses WHERE id = $1 AND user_id = $2", lensID, uid)
	if err != nil {
		h.logger.Error("failed to delete lens", zap.Error(err))
		utils.Error(c, 500, "Failed to delete lens")
		return
	}
	if tag.RowsAffected() == 0 {
		utils.Error(c, 404, "Lens not found")
		return
	}

	c.JSON(200, gin.H{"deleted": true})
}
