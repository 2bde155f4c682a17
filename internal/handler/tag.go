package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/filmlog/filmlog/internal/database"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TagHandler struct {
	logger *zap.Logger
}

func NewTagHandler(logger *zap.Logger) *TagHandler {
	return &TagHandler{logger: logger}
}

// List handles GET /api/user/:user_id/tags
func (h *TagHandler) List(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	rows, err := pool.Query(ctx,
		"SELECT id, name, usage_count FROM tags WHERE user_id = $1 ORDER BY name", uid)
	if err != nil {
		h.logger.Error("failed to query tags", zap.Error(err))
		utils.Error(c, 500, "Failed to fetch tags")
		return
	}
	defer rows.Close()

	tags := []database.Tag{}
	for rows.Next() {
		var t database.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.UsageCount); err != nil {
			h.logger.Error("failed to scan tag", zap.Error(err))
			utils.Error(c, 500, "Failed to fetch tags")
			return
		}
		tags = append(tags, t)
	}

	c.JSON(200, gin.H{"tags": tags})
}

// Create handles POST /api/user/:user_id/tags
func (h *TagHandler) Create(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	name := utils.NormalizeTag(req.Name)
	if name == "" {
		utils.Error(c, 400, "Tag name is required")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	var t database.Tag
	err := pool.QueryRow(ctx, `
		INSERT INTO tags (user_id, name) VALUES ($1, $2)
		ON CONFLICT (user_id, name) DO NOTHING
		RETURNING id, name, usage_count
	`, uid, name).Scan(&t.ID, &t.Name, &t.UsageCount)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Error(c, 409, "Tag already exists")
		return
	}
	if err != nil {
		h.logger.Error("failed to insert tag", zap.Error(err))
		utils.Error(c, 500, "Failed to create tag")
		return
	}

	c.JSON(201, gin.H{"tag": t})
}

// Delete handles DELETE /api/user/:user_id/tags/:tag_id
// Associations to photos are removed by the schema's cascade.
func (h *TagHandler) Delete(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	tagID, err := strconv.Atoi(c.Param("tag_id"))
	if err != nil {
		utils.Error(c, 404, "Tag not found")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	tag, err := pool.Exec(ctx,
		"DELETE FROM tags WHERE id = $1 AND user_id = $2", tagID, uid)
	if err != nil {
		h.logger.Error("failed to delete tag", zap.Error(err))
		utils.Error(c, 500, "Failed to delete tag")
		return
	}
	if tag.RowsAffected() == 0 {
		utils.Error(c, 404, "Tag not found")
		return
	}

	c.JSON(200, gin.H{"deleted": true})
}
