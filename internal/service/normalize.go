package service

import (
	"context"

	"github.com/pribylovaa/go-forum-comments/internal/models"
	"github.com/pribylovaa/go-forum-comments/internal/pkg/log"
)

// Имя автора, если сервер не прислал денормализованное поле.
const unknownAuthor = "unknown"

// Normalize превращает серверные строки в готовые к показу плоские записи.
//
// Правила:
//   - строка с неположительным id/post_id/author_id или отрицательным
//     parent_id битая: отбрасывается с warning'ом, рендеринг не падает;
//   - отрицательный mention_user_id — битая ссылка упоминания: очищается,
//     сама строка остаётся;
//   - серверный level — только подсказка, прижимается к нижней границе 1
//     (верхнюю границу обеспечивает BuildTree);
//   - IsOwn вычисляется по viewerID; viewerID == 0 — аноним, ничем не владеет.
func Normalize(ctx context.Context, rows []models.CommentRow, viewerID int64) []models.Comment {
	lg := log.From(ctx).With("op", "service/normalize/Normalize")

	out := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		if row.ID <= 0 || row.PostID <= 0 || row.AuthorID <= 0 || row.ParentID < 0 {
			lg.Warn("malformed comment row dropped",
				"id", row.ID, "post_id", row.PostID, "author_id", row.AuthorID, "parent_id", row.ParentID)
			continue
		}

		if row.MentionUserID < 0 {
			lg.Warn("malformed mention reference cleared", "id", row.ID, "mention_user_id", row.MentionUserID)
			row.MentionUserID = 0
		}

		out = append(out, normalizeRow(row, viewerID))
	}

	return out
}

// normalizeRow — нормализация одной (валидной) строки.
func normalizeRow(row models.CommentRow, viewerID int64) models.Comment {
	level := row.Level
	if level < 1 {
		level = 1
	}

	name := row.AuthorName
	if name == "" {
		name = unknownAuthor
	}

	return models.Comment{
		ID:            row.ID,
		PostID:        row.PostID,
		AuthorID:      row.AuthorID,
		ParentID:      row.ParentID,
		Level:         level,
		Content:       row.Content,
		MentionUserID: row.MentionUserID,
		AuthorName:    name,
		AuthorAvatar:  row.AuthorAvatar,
		LikeCount:     row.LikesCount,
		LikedByViewer: row.IsLiked,
		IsHidden:      row.IsHidden,
		IsOwn:         viewerID != 0 && row.AuthorID == viewerID,
		CreatedAt:     row.CreatedAt,
	}
}
