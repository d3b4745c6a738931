package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-forum-comments/internal/models"
)

var (
	// ErrNotFound — комментарий отсутствует на сервере.
	ErrNotFound = errors.New("not found")
	// ErrPostNotFound — указанный пост не существует.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound — указанный пользователь не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden — операция отклонена сервером (не автор и т.п.).
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable — сетевая ошибка или недоступность backend'а.
	ErrUnavailable = errors.New("backend unavailable")
)

// CreateCommentInput — параметры создания комментария или ответа.
// ParentID == 0 — корневой комментарий; MentionUserID == 0 — без адресата.
type CreateCommentInput struct {
	PostID        int64
	AuthorID      int64
	ParentID      int64
	Content       string
	MentionUserID int64
}

// Storage описывает коллаборатора персистентности — REST API forum-backend'а.
// Все уровни/агрегаты в ответах — серверные подсказки; ядро доверяет им
// только до нормализации и перестройки дерева.
type Storage interface {
	// CommentsTree возвращает плоскую выдачу комментариев поста.
	// viewerID нужен серверу для вычисления is_liked; viewerID == 0 — аноним.
	// Возможные ошибки: ErrPostNotFound, ErrUnavailable.
	CommentsTree(ctx context.Context, postID, viewerID int64) ([]models.CommentRow, error)

	// CreateComment создаёт корневой комментарий или ответ и возвращает
	// серверную запись (с присвоенным id).
	// Возможные ошибки: ErrPostNotFound, ErrUserNotFound, ErrNotFound
	// (родитель не найден), ErrUnavailable.
	CreateComment(ctx context.Context, in CreateCommentInput) (*models.CommentRow, error)

	// UpdateComment заменяет текст (и адресата) существующего комментария.
	// Сервер проверяет авторство по authorID.
	// Возможные ошибки: ErrNotFound, ErrForbidden, ErrUnavailable.
	UpdateComment(ctx context.Context, id, authorID int64, content string, mentionUserID int64) error

	// DeleteComment удаляет комментарий автора (сервер каскадирует прямые ответы).
	// Возможные ошибки: ErrNotFound, ErrForbidden, ErrUnavailable.
	DeleteComment(ctx context.Context, id, authorID int64) error

	// LikeComment ставит лайк от имени likerID.
	// Возможные ошибки: ErrNotFound, ErrUserNotFound, ErrUnavailable.
	LikeComment(ctx context.Context, id, likerID int64) error

	// UnlikeComment снимает лайк от имени likerID.
	// Возможные ошибки: ErrNotFound, ErrUserNotFound, ErrUnavailable.
	UnlikeComment(ctx context.Context, id, likerID int64) error
}
