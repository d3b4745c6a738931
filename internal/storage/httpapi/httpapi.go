// httpapi реализует storage.Storage поверх REST/JSON API forum-backend'а.
//
// Контракт — конверт ApiResponseDTO: {success, message, data, errors};
// поле errors несёт машинный код (POST_NOT_FOUND, USER_NOT_FOUND, ...),
// который нормализуется в сентинельные ошибки пакета storage.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-forum-comments/internal/config"
	"github.com/pribylovaa/go-forum-comments/internal/models"
	"github.com/pribylovaa/go-forum-comments/internal/storage"
)

// Client — HTTP-клиент forum-backend'а.
type Client struct {
	base string
	http *http.Client
}

var _ storage.Storage = (*Client)(nil)

// New создаёт клиента по конфигурации (base_url уже провалидирован в config).
func New(cfg *config.Config) *Client {
	return &Client{
		base: strings.TrimRight(cfg.API.BaseURL, "/"),
		http: &http.Client{Timeout: cfg.API.Timeout},
	}
}

// apiEnvelope — конверт ответов backend'а (ApiResponseDTO).
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  string          `json:"errors"`
}

// commentRowDTO — строка комментария в JSON backend'а (sp_get_comments_tree).
type commentRowDTO struct {
	ID            int64     `json:"id"`
	PostID        int64     `json:"post_id"`
	AuthorID      int64     `json:"author_id"`
	ParentID      *int64    `json:"parent_id"`
	Level         int32     `json:"level"`
	Content       string    `json:"content"`
	MentionUserID *int64    `json:"mention_user_id"`
	LikesCount    int32     `json:"likes_count"`
	IsLiked       bool      `json:"is_liked"`
	IsHidden      bool      `json:"is_hidden"`
	AuthorName    string    `json:"author_name"`
	AuthorAvatar  string    `json:"author_avatar"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d commentRowDTO) toModel() models.CommentRow {
	row := models.CommentRow{
		ID:           d.ID,
		PostID:       d.PostID,
		AuthorID:     d.AuthorID,
		Level:        d.Level,
		Content:      d.Content,
		LikesCount:   d.LikesCount,
		IsLiked:      d.IsLiked,
		IsHidden:     d.IsHidden,
		AuthorName:   d.AuthorName,
		AuthorAvatar: d.AuthorAvatar,
		CreatedAt:    d.CreatedAt,
	}

	if d.ParentID != nil {
		row.ParentID = *d.ParentID
	}

	if d.MentionUserID != nil {
		row.MentionUserID = *d.MentionUserID
	}

	return row
}

// createCommentDTO — тело POST /api/comments.
type createCommentDTO struct {
	PostID        int64  `json:"postId"`
	AuthorID      int64  `json:"authorId"`
	ParentID      *int64 `json:"parentId"`
	Content       string `json:"content"`
	MentionUserID *int64 `json:"mentionUserId"`
}

// updateCommentDTO — тело PUT /api/comments/{id}.
type updateCommentDTO struct {
	Content       string `json:"content"`
	MentionUserID *int64 `json:"mentionUserId"`
}

// optID — указатель на id или nil для нулевого значения (JSON null).
func optID(id int64) *int64 {
	if id == 0 {
		return nil
	}

	return &id
}

// mapAPIError переводит код из envelope.errors в сентинельную ошибку storage.
func mapAPIError(env apiEnvelope) error {
	switch env.Errors {
	case "POST_NOT_FOUND":
		return storage.ErrPostNotFound
	case "USER_NOT_FOUND":
		return storage.ErrUserNotFound
	case "COMMENT_NOT_FOUND", "PARENT_NOT_FOUND":
		return storage.ErrNotFound
	case "FORBIDDEN", "NOT_AUTHOR":
		return storage.ErrForbidden
	default:
		return fmt.Errorf("%w: %s", storage.ErrUnavailable, env.Message)
	}
}

// do выполняет запрос и возвращает data из конверта.
// Сетевые проблемы и не-JSON ответы нормализуются в ErrUnavailable.
func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, body any) (json.RawMessage, error) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		requestsTotal.WithLabelValues(op, outcome).Inc()
		requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	endpoint := c.base + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			outcome = "network_error"
			return nil, fmt.Errorf("%s: marshal body: %w", op, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		outcome = "network_error"
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = "network_error"
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		outcome = "network_error"
		return nil, fmt.Errorf("%s: read body: %w: %v", op, storage.ErrUnavailable, err)
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		outcome = "network_error"
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, storage.ErrUnavailable)
	}

	if !env.Success {
		outcome = "api_error"
		return nil, fmt.Errorf("%s: %w", op, mapAPIError(env))
	}

	return env.Data, nil
}

// CommentsTree — GET /api/comments/tree?postId=&userId=.
func (c *Client) CommentsTree(ctx context.Context, postID, viewerID int64) ([]models.CommentRow, error) {
	const op = "httpapi/CommentsTree"

	q := url.Values{"postId": {strconv.FormatInt(postID, 10)}}
	if viewerID != 0 {
		q.Set("userId", strconv.FormatInt(viewerID, 10))
	}

	data, err := c.do(ctx, "comments_tree", http.MethodGet, "/api/comments/tree", q, nil)
	if err != nil {
		return nil, err
	}

	var dtos []commentRowDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("%s: decode data: %w", op, storage.ErrUnavailable)
	}

	rows := make([]models.CommentRow, 0, len(dtos))
	for _, d := range dtos {
		rows = append(rows, d.toModel())
	}

	return rows, nil
}

// CreateComment — POST /api/comments.
func (c *Client) CreateComment(ctx context.Context, in storage.CreateCommentInput) (*models.CommentRow, error) {
	const op = "httpapi/CreateComment"

	body := createCommentDTO{
		PostID:        in.PostID,
		AuthorID:      in.AuthorID,
		ParentID:      optID(in.ParentID),
		Content:       in.Content,
		MentionUserID: optID(in.MentionUserID),
	}

	data, err := c.do(ctx, "create_comment", http.MethodPost, "/api/comments", nil, body)
	if err != nil {
		return nil, err
	}

	var dto commentRowDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%s: decode data: %w", op, storage.ErrUnavailable)
	}

	row := dto.toModel()

	return &row, nil
}

// UpdateComment — PUT /api/comments/{id}?authorId=.
func (c *Client) UpdateComment(ctx context.Context, id, authorID int64, content string, mentionUserID int64) error {
	q := url.Values{"authorId": {strconv.FormatInt(authorID, 10)}}
	body := updateCommentDTO{Content: content, MentionUserID: optID(mentionUserID)}

	_, err := c.do(ctx, "update_comment", http.MethodPut,
		"/api/comments/"+strconv.FormatInt(id, 10), q, body)

	return err
}

// DeleteComment — DELETE /api/comments/{id}?authorId=.
func (c *Client) DeleteComment(ctx context.Context, id, authorID int64) error {
	q := url.Values{"authorId": {strconv.FormatInt(authorID, 10)}}

	_, err := c.do(ctx, "delete_comment", http.MethodDelete,
		"/api/comments/"+strconv.FormatInt(id, 10), q, nil)

	return err
}

// LikeComment — POST /api/comments/{id}/like?likerId=.
func (c *Client) LikeComment(ctx context.Context, id, likerID int64) error {
	q := url.Values{"likerId": {strconv.FormatInt(likerID, 10)}}

	_, err := c.do(ctx, "like_comment", http.MethodPost,
		"/api/comments/"+strconv.FormatInt(id, 10)+"/like", q, nil)

	return err
}

// UnlikeComment — POST /api/comments/{id}/unlike?likerId=.
func (c *Client) UnlikeComment(ctx context.Context, id, likerID int64) error {
	q := url.Values{"likerId": {strconv.FormatInt(likerID, 10)}}

	_, err := c.do(ctx, "unlike_comment", http.MethodPost,
		"/api/comments/"+strconv.FormatInt(id, 10)+"/unlike", q, nil)

	return err
}
