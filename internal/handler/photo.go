package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/filmlog/filmlog/internal/database"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PhotoHandler struct {
	logger *zap.Logger
}

func NewPhotoHandler(logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{logger: logger}
}

type photoRequest struct {
	Subject      string   `json:"subject"`
	FStop        string   `json:"f_stop"`
	ShutterSpeed string   `json:"shutter_speed"`
	LensID       *int     `json:"lens_id"`
	PhotoURL     *string  `json:"photo_url"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
}

// ListByRoll handles GET /api/user/:user_id/rolls/:roll_id/photos
func (h *PhotoHandler) ListByRoll(c *gin.Context) {
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

	if !h.rollOwned(ctx, rollID, uid) {
		utils.Error(c, 404, "Roll not found")
		return
	}

	query := `
		SELECT p.id, p.roll_id, p.subject, p.f_stop, p.shutter_speed,
		       p.lens_id, l.name AS lens_name, p.photo_url, p.notes,
		       array_agg(t.name) FILTER (WHERE t.id IS NOT NULL) AS tags,
		       p.created_at
		FROM photos p
		LEFT JOIN lenses l ON l.id = p.lens_id
		LEFT JOIN photo_tags pt ON pt.photo_id = p.id
		LEFT JOIN tags t ON t.id = pt.tag_id
		WHERE p.roll_id = $1
		GROUP BY p.id, l.name
		ORDER BY p.created_at ASC
	`
	h.logger.Debug("executing photo list query",
		zap.String("sql", utils.FormatSQL(query, rollID)),
	)

	rows, err := pool.Query(ctx, query, rollID)
	if err != nil {
		h.logger.Error("failed to query photos", zap.Error(err))
		utils.Error(c, 500, "Failed to fetch photos")
		return
	}
	defer rows.Close()

	photos := []database.Photo{}
	for rows.Next() {
		var p database.Photo
		var createdAt time.Time
		if err := rows.Scan(
			&p.ID, &p.RollID, &p.Subject, &p.FStop, &p.ShutterSpeed,
			&p.LensID, &p.LensName, &p.PhotoURL, &p.Notes, &p.Tags, &createdAt,
		); err != nil {
			h.logger.Error("failed to scan photo", zap.Error(err))
			utils.Error(c, 500, "Failed to fetch photos")
			return
		}
		p.CreatedAt = createdAt
		if p.Tags == nil {
			p.Tags = []string{}
		}
		photos = append(photos, p)
	}

	c.JSON(200, gin.H{"photos": photos})
}

// Create handles POST /api/user/:user_id/rolls/:roll_id/photos
//
// The photo insert and its tag attachments run in one transaction so a
// failed attach never leaves a half-created photo behind.
func (h *PhotoHandler) Create(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	rollID, err := strconv.Atoi(c.Param("roll_id"))
	if err != nil {
		utils.Error(c, 404, "Roll not found")
		return
	}

	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	if !h.rollOwned(ctx, rollID, uid) {
		utils.Error(c, 404, "Roll not found")
		return
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		h.logger.Error("failed to begin transaction", zap.Error(err))
		utils.Error(c, 500, "Failed to create photo")
		return
	}
	defer tx.Rollback(ctx)

	var photoID int
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO photos (roll_id, subject, f_stop, shutter_speed, lens_id, photo_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, rollID, req.Subject, req.FStop, req.ShutterSpeed, req.LensID, req.PhotoURL, req.Notes).
		Scan(&photoID, &createdAt)
	if err != nil {
		h.logger.Error("failed to insert photo", zap.Error(err))
		utils.Error(c, 500, "Failed to create photo")
		return
	}

	tags, err := h.attachTags(ctx, tx, uid, photoID, req.Tags)
	if err != nil {
		h.logger.Error("failed to attach tags", zap.Error(err))
		utils.Error(c, 500, "Failed to create photo")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		h.logger.Error("failed to commit photo", zap.Error(err))
		utils.Error(c, 500, "Failed to create photo")
		return
	}

	c.JSON(201, gin.H{"photo": database.Photo{
		ID:           photoID,
		RollID:       rollID,
		Subject:      req.Subject,
		FStop:        req.FStop,
		ShutterSpeed: req.ShutterSpeed,
		LensID:       req.LensID,
		PhotoURL:     req.PhotoURL,
		Notes:        req.Notes,
		Tags:         tags,
		CreatedAt:    createdAt,
	}})
}

// Update handles PUT /api/user/:user_id/photos/:photo_id
// The tag set is replaced wholesale inside the same transaction as the
// field update.
func (h *PhotoHandler) Update(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	photoID, err := strconv.Atoi(c.Param("photo_id"))
	if err != nil {
		utils.Error(c, 404, "Photo not found")
		return
	}

	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	tx, err := pool.Begin(ctx)
	if err != nil {
		h.logger.Error("failed to begin transaction", zap.Error(err))
		utils.Error(c, 500, "Failed to update photo")
		return
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE photos p SET subject = $1, f_stop = $2, shutter_speed = $3,
		       lens_id = $4, photo_url = $5, notes = $6
		FROM rolls r
		WHERE p.id = $7 AND r.id = p.roll_id AND r.user_id = $8
	`, req.Subject, req.FStop, req.ShutterSpeed, req.LensID, req.PhotoURL, req.Notes, photoID, uid)
	if err != nil {
		h.logger.Error("failed to update photo", zap.Error(err))
		utils.Error(c, 500, "Failed to update photo")
		return
	}
	if tag.RowsAffected() == 0 {
		utils.Error(c, 404, "Photo not found")
		return
	}

	if _, err := tx.Exec(ctx, "DELETE FROM photo_tags WHERE photo_id = $1", photoID); err != nil {
		h.logger.Error("failed to detach tags", zap.Error(err))
		utils.Error(c, 500, "Failed to update photo")
		return
	}
	if _, err := h.attachTags(ctx, tx, uid, photoID, req.Tags); err != nil {
		h.logger.Error("failed to attach tags", zap.Error(err))
		utils.Error(c, 500, "Failed to update photo")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		h.logger.Error("failed to commit photo update", zap.Error(err))
		utils.Error(c, 500, "Failed to update photo")
		return
	}

	c.JSON(200, gin.H{"updated": true})
}

// Delete handles DELETE /api/user/:user_id/photos/:photo_id
func (h *PhotoHandler) Delete(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}
	photoID, err := strconv.Atoi(c.Param("photo_id"))
	if err != nil {
		utils.Error(c, 404, "Photo not found")
		return
	}

	ctx := context.Background()
	pool := database.GetPool()

	tag, err := pool.Exec(ctx, `
		DELETE FROM photos p
		USING rolls r
		WHERE p.id = $1 AND r.id = p.roll_id AND r.user_id = $2
	`, photoID, uid)
	if err != nil {
		h.logger.Error("failed to delete photo", zap.Error(err))
		utils.Error(c, 500, "Failed to delete photo")
		return
	}
	if tag.RowsAffected() == 0 {
		utils.Error(c, 404, "Photo not found")
		return
	}

	c.JSON(200, gin.H{"deleted": true})
}

// rollOwned reports whether the roll exists and belongs to the user.
func (h *PhotoHandler) rollOwned(ctx context.Context, rollID, uid int) bool {
	var id int
	err := database.GetPool().QueryRow(ctx,
		"SELECT id FROM rolls WHERE id = $1 AND user_id = $2", rollID, uid).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	if err != nil {
		h.logger.Error("failed to check roll ownership", zap.Error(err))
		return false
	}
	return true
}

// attachTags upserts each tag name into the user's vocabulary and links it
// to the photo. Returns the normalized tag names that were attached.
func (h *PhotoHandler) attachTags(ctx context.Context, tx pgx.Tx, uid, photoID int, names []string) ([]string, error) {
	attached := []string{}
	for _, name := range names {
		normalized := utils.NormalizeTag(name)
		if normalized == "" {
			continue
		}

		var tagID int
		err := tx.QueryRow(ctx, `
			INSERT INTO tags (user_id, name) VALUES ($1, $2)
			ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, uid, normalized).Scan(&tagID)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO photo_tags (photo_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, photoID, tagID); err != nil {
			return nil, err
		}
		attached = append(attached, normalized)
	}
	return attached, nil
}
