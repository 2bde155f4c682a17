package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/filmlog/filmlog/internal/config"
	"github.com/filmlog/filmlog/internal/database"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
}

func NewSearchHandler(logger *zap.Logger) *SearchHandler {
	cfg := config.Get()
	defaultPageSize := 10 // fallback default
	maxPageSize := 100
	if cfg != nil && cfg.API.Limits.DefaultPageSize > 0 {
		defaultPageSize = cfg.API.Limits.DefaultPageSize
	}
	if cfg != nil && cfg.API.Limits.MaxPageSize > 0 {
		maxPageSize = cfg.API.Limits.MaxPageSize
	}
	return &SearchHandler{
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// SearchPhoto is the public row shape. Identifiers are strings, photo_url is
// omitted when absent, and tags always carries the photo's complete tag set.
type SearchPhoto struct {
	ID        string   `json:"id"`
	RollID    string   `json:"roll_id"`
	Subject   string   `json:"subject"`
	PhotoURL  *string  `json:"photo_url,omitempty"`
	CreatedAt string   `json:"created_at"`
	RollName  string   `json:"roll_name"`
	Tags      []string `json:"tags"`
}

// SearchResponse is the body of every 200 search response.
type SearchResponse struct {
	Photos     []SearchPhoto    `json:"photos"`
	Pagination utils.Pagination `json:"pagination"`
}

// searchRow is the raw record produced by the data query.
type searchRow struct {
	ID        int
	RollID    int
	Subject   string
	PhotoURL  *string
	CreatedAt time.Time
	RollName  string
	Tags      []string
}

// Search handles GET /api/user/:user_id/search
//
// Tag matching is disjunctive: a photo qualifies when it carries any of the
// requested tags. Free-text terms are case-insensitive substring matches
// against the subject, OR-combined. An empty tag filter means "match
// nothing" and never reaches the database.
func (h *SearchHandler) Search(c *gin.Context) {
	uid, ok := requireOwner(c)
	if !ok {
		return
	}

	tags := utils.NormalizeTags(c.QueryArray("tags"))
	terms := utils.NormalizeSearchTerms(c.QueryArray("searchTerm"))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(h.defaultPageSize)))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = h.defaultPageSize
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	if len(tags) == 0 {
		c.JSON(200, SearchResponse{Photos: []SearchPhoto{}, Pagination: utils.Pagination{}})
		return
	}

	countSQL, countArgs, dataSQL, dataArgs := buildPhotoSearch(uid, tags, terms, pageSize, (page-1)*pageSize)

	ctx := context.Background()
	pool := database.GetPool()

	h.logger.Debug("executing count query",
		zap.String("sql", utils.FormatSQL(countSQL, countArgs...)),
	)

	var total int64
	if err := pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		h.logger.Error("failed to count photos", zap.Error(err))
		utils.Error(c, 500, "Failed to search photos")
		return
	}

	h.logger.Debug("executing search query",
		zap.String("sql", utils.FormatSQL(dataSQL, dataArgs...)),
		zap.Int64("total", total),
	)

	rows, err := pool.Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		h.logger.Error("failed to execute search query", zap.Error(err))
		utils.Error(c, 500, "Failed to search photos")
		return
	}
	defer rows.Close()

	photos := []SearchPhoto{}
	for rows.Next() {
		var row searchRow
		if err := rows.Scan(
			&row.ID, &row.RollID, &row.Subject, &row.PhotoURL,
			&row.CreatedAt, &row.RollName, &row.Tags,
		); err != nil {
			h.logger.Error("failed to scan photo", zap.Error(err))
			utils.Error(c, 500, "Failed to search photos")
			return
		}
		photos = append(photos, row.transform())
	}
	if err := rows.Err(); err != nil {
		h.logger.Error("failed to read search results", zap.Error(err))
		utils.Error(c, 500, "Failed to search photos")
		return
	}

	c.JSON(200, SearchResponse{
		Photos:     photos,
		Pagination: utils.NewPagination(page, pageSize, total),
	})
}

// buildPhotoSearch renders the count and data queries for a tag-filtered
// photo search. The fixed parameters (user id, tag set) occupy $1 and $2;
// term placeholders are allocated after them in clause order, and
// LIMIT/OFFSET take the last two slots of the data query. tags must be
// non-empty — the caller short-circuits the empty case.
func buildPhotoSearch(userID int, tags, terms []string, limit, offset int) (countSQL string, countArgs []interface{}, dataSQL string, dataArgs []interface{}) {
	qb := utils.NewQueryBuilder()
	qb.Where("r.user_id = ?", userID)
	qb.Where(`EXISTS (
			SELECT 1 FROM photo_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.photo_id = p.id AND t.name = ANY(?)
		)`, tags)

	if len(terms) > 0 {
		fragments := make([]string, len(terms))
		args := make([]interface{}, len(terms))
		for i, term := range terms {
			fragments[i] = "p.subject ILIKE ?"
			args[i] = "%" + term + "%"
		}
		qb.Where("("+strings.Join(fragments, " OR ")+")", args...)
	}

	where := qb.Clause()

	countSQL = fmt.Sprintf(
		"SELECT COUNT(DISTINCT p.id) FROM photos p JOIN rolls r ON r.id = p.roll_id %s",
		where,
	)
	countArgs = qb.Args()

	dataSQL = fmt.Sprintf(`
		SELECT p.id, p.roll_id, p.subject, p.photo_url, p.created_at, r.name AS roll_name,
		       array_agg(t.name) FILTER (WHERE t.id IS NOT NULL) AS tags
		FROM photos p
		JOIN rolls r ON r.id = p.roll_id
		LEFT JOIN photo_tags pt ON pt.photo_id = p.id
		LEFT JOIN tags t ON t.id = pt.tag_id
		%s
		GROUP BY p.id, p.roll_id, p.subject, p.photo_url, p.created_at, r.name
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, qb.ArgCount()+1, qb.ArgCount()+2)
	dataArgs = append(append([]interface{}{}, qb.Args()...), limit, offset)

	return countSQL, countArgs, dataSQL, dataArgs
}

// transform maps a raw row into the public shape: identifiers stringified,
// null photo_url dropped, null tag aggregate defended into an empty list.
func (r searchRow) transform() SearchPhoto {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return SearchPhoto{
		ID:        strconv.Itoa(r.ID),
		RollID:    strconv.Itoa(r.RollID),
		Subject:   r.Subject,
		PhotoURL:  r.PhotoURL,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		RollName:  r.RollName,
		Tags:      tags,
	}
}
