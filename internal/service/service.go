// service содержит ядро comment-секции: нормализацию серверных строк,
// построение трёхуровневого дерева, черновики ответов и операции над
// плоским списком комментариев.
package service

import (
	"errors"

	"github.com/pribylovaa/go-forum-comments/internal/config"
	"github.com/pribylovaa/go-forum-comments/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры операции
	// (пустой текст, неположительный id и т.п.).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — комментарий/пост отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrForbidden — операция недоступна зрителю (не автор / автор).
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable — backend недоступен; локальное состояние откатано.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrInternal — прочие ошибки коллаборатора.
	ErrInternal = errors.New("internal")
)

// Service — фабрика comment-секций поверх коллаборатора персистентности.
type Service struct {
	storage storage.Storage
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}
