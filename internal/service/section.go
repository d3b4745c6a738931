package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pribylovaa/go-forum-comments/internal/models"
	"github.com/pribylovaa/go-forum-comments/internal/pkg/log"
	"github.com/pribylovaa/go-forum-comments/internal/storage"
)

// Section — состояние comment-секции одного поста.
//
// Владеет единственным авторитетным плоским списком комментариев; дерево —
// его чистая проекция, перестраиваемая синхронно после каждого изменения.
// Сетевые операции применяются оптимистично: локальный переход сразу, откат
// к прежнему снимку при отказе коллаборатора. Мьютекс сериализует переходы;
// секция не разделяется между постами.
type Section struct {
	mu       sync.Mutex
	svc      *Service
	postID   int64
	viewerID int64

	comments []models.Comment
	tree     []models.CommentNode
	drafts   *Drafts
}

// OpenSection загружает секцию поста: выдача коллаборатора -> Normalize ->
// BuildTree. viewerID == 0 — анонимный зритель.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — неположительный postID;
//   - ErrNotFound — пост не существует;
//   - ErrUnavailable — backend недоступен;
//   - ErrInternal — прочие ошибки коллаборатора.
func (s *Service) OpenSection(ctx context.Context, postID, viewerID int64) (*Section, error) {
	const op = "service/section/OpenSection"

	lg := log.From(ctx).With("op", op, "post_id", postID, "viewer_id", viewerID)

	if postID <= 0 {
		lg.Warn("invalid argument: non-positive post_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	rows, err := s.storage.CommentsTree(ctx, postID, viewerID)
	if err != nil {
		lg.Warn("comments fetch failed", "err", err)
		return nil, mapStorageErr(op, err)
	}

	sec := &Section{
		svc:      s,
		postID:   postID,
		viewerID: viewerID,
		drafts:   NewDrafts(),
	}
	sec.comments = Normalize(ctx, rows, viewerID)
	sec.rebuild(ctx)

	lg.Info("section opened", "comments", len(sec.comments))

	return sec, nil
}

// Refresh перечитывает секцию с сервера; черновики ответов переживают
// обновление.
func (sec *Section) Refresh(ctx context.Context) error {
	const op = "service/section/Refresh"

	rows, err := sec.svc.storage.CommentsTree(ctx, sec.postID, sec.viewerID)
	if err != nil {
		return mapStorageErr(op, err)
	}

	sec.mu.Lock()
	defer sec.mu.Unlock()

	sec.comments = Normalize(ctx, rows, sec.viewerID)
	sec.rebuild(ctx)

	return nil
}

// rebuild перестраивает дерево из плоского списка и синхронизирует
// производные уровни записей с деревом. Вызывается под mu (кроме
// OpenSection, где секция ещё не опубликована).
func (sec *Section) rebuild(ctx context.Context) {
	tree, orphans := BuildTree(sec.comments)
	sec.tree = tree

	if len(orphans) > 0 {
		log.From(ctx).Warn("orphaned comments dropped from tree",
			"post_id", sec.postID, "ids", orphans)
	}

	levels := make(map[int64]int32, len(sec.comments))
	var walk func(nodes []models.CommentNode)
	walk = func(nodes []models.CommentNode) {
		for _, n := range nodes {
			levels[n.ID] = n.Level
			walk(n.Replies)
		}
	}
	walk(tree)

	for i := range sec.comments {
		if lvl, ok := levels[sec.comments[i].ID]; ok {
			sec.comments[i].Level = lvl
		}
	}
}

// Tree возвращает текущее дерево (только для чтения).
func (sec *Section) Tree() []models.CommentNode {
	sec.mu.Lock()
	defer sec.mu.Unlock()

	return sec.tree
}

// Comments возвращает копию плоского списка.
func (sec *Section) Comments() []models.Comment {
	sec.mu.Lock()
	defer sec.mu.Unlock()

	out := make([]models.Comment, len(sec.comments))
	copy(out, sec.comments)

	return out
}

// Comment возвращает запись по id.
func (sec *Section) Comment(id int64) (models.Comment, bool) {
	sec.mu.Lock()
	defer sec.mu.Unlock()

	return findComment(sec.comments, id)
}

// AddComment публикует корневой комментарий: оптимистичное добавление с
// временным id, подтверждение серверной записью, откат при отказе.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой или слишком длинный текст;
//   - ErrNotFound / ErrUnavailable / ErrInternal — от коллаборатора
//     (локальное добавление к этому моменту откатано).
func (sec *Section) AddComment(ctx context.Context, content string) (*models.Comment, error) {
	const op = "service/section/AddComment"

	lg := log.From(ctx).With("op", op, "post_id", sec.postID)

	if sec.viewerID == 0 {
		lg.Warn("anonymous viewer cannot comment")
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	content, err := sec.validContent(content)
	if err != nil {
		lg.Warn("invalid argument: bad content")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	local := models.Comment{
		ID:        tempID(),
		PostID:    sec.postID,
		AuthorID:  sec.viewerID,
		Level:     1,
		Content:   content,
		IsOwn:     true,
		CreatedAt: time.Now().UTC(),
	}

	sec.mu.Lock()
	prev := sec.comments
	sec.comments = appendComment(sec.comments, local)
	sec.rebuild(ctx)
	sec.mu.Unlock()

	row, err := sec.svc.storage.CreateComment(ctx, storage.CreateCommentInput{
		PostID:   sec.postID,
		AuthorID: sec.viewerID,
		Content:  content,
	})

	sec.mu.Lock()
	defer sec.mu.Unlock()

	if err != nil {
		lg.Warn("create failed, optimistic append reverted", "err", err)
		sec.comments = prev
		sec.rebuild(ctx)
		return nil, mapStorageErr(op, err)
	}

	confirmed := normalizeRow(*row, sec.viewerID)
	sec.comments = replaceComment(sec.comments, local.ID, confirmed)
	sec.rebuild(ctx)

	return &confirmed, nil
}

// StartReply открывает черновик ответа на комментарий targetID и возвращает
// id контейнера, в котором живёт поле ввода.
func (sec *Section) StartReply(targetID int64) (int64, error) {
	const op = "service/section/StartReply"

	sec.mu.Lock()
	defer sec.mu.Unlock()

	target, ok := findComment(sec.comments, targetID)
	if !ok {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return sec.drafts.StartReply(target), nil
}

// EditDraft применяет содержимое поля ввода к черновику контейнера.
func (sec *Section) EditDraft(containerID int64, raw string) {
	sec.mu.Lock()
	defer sec.mu.Unlock()

	sec.drafts.EditText(containerID, raw)
}

// Draft возвращает копию черновика контейнера.
func (sec *Section) Draft(containerID int64) (models.ReplyDraft, bool) {
	sec.mu.Lock()
	defer sec.mu.Unlock()

	return sec.drafts.Get(containerID)
}

// ClearMention сбрасывает адресата черновика, сохраняя текст.
func (sec *Section) ClearMention(containerID int64) {
	sec.mu.Lock()
	defer sec.mu.Unlock()

	sec.drafts.ClearMention(containerID)
}

// SubmitReply отправляет черновик контейнера: строит ответ с
// ParentID == containerID, уровнем min(container.Level+1, 3) и адресатом из
// черновика; Content уходит без префикса упоминания. Черновик очищается и
// восстанавливается при отказе коллаборатора вместе с откатом списка.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — черновика нет или пустой текст после TrimSpace;
//   - ErrNotFound — контейнер исчез из списка;
//   - ErrUnavailable / ErrInternal — от коллаборатора.
func (sec *Section) SubmitReply(ctx context.Context, containerID int64) (*models.Comment, error) {
	const op = "service/section/SubmitReply"

	lg := log.From(ctx).With("op", op, "post_id", sec.postID, "container_id", containerID)

	if sec.viewerID == 0 {
		lg.Warn("anonymous viewer cannot reply")
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	sec.mu.Lock()

	draft, ok := sec.drafts.Get(containerID)
	if !ok {
		sec.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	container, ok := findComment(sec.comments, containerID)
	if !ok {
		sec.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	content, err := sec.validContent(draft.Text)
	if err != nil {
		sec.mu.Unlock()
		lg.Warn("invalid argument: bad reply text")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	level := container.Level + 1
	if level > maxLevel {
		level = maxLevel
	}

	local := models.Comment{
		ID:            tempID(),
		PostID:        sec.postID,
		AuthorID:      sec.viewerID,
		ParentID:      containerID,
		Level:         level,
		Content:       content,
		MentionUserID: draft.MentionUserID,
		IsOwn:         true,
		CreatedAt:     time.Now().UTC(),
	}

	prev := sec.comments
	sec.comments = appendComment(sec.comments, local)
	sec.drafts.Clear(containerID)
	sec.rebuild(ctx)
	sec.mu.Unlock()

	row, err := sec.svc.storage.CreateComment(ctx, storage.CreateCommentInput{
		PostID:        sec.postID,
		AuthorID:      sec.viewerID,
		ParentID:      containerID,
		Content:       content,
		MentionUserID: draft.MentionUserID,
	})

	sec.mu.Lock()
	defer sec.mu.Unlock()

	if err != nil {
		lg.Warn("reply create failed, optimistic append reverted", "err", err)
		sec.comments = prev
		sec.drafts.put(containerID, draft)
		sec.rebuild(ctx)
		return nil, mapStorageErr(op, err)
	}

	confirmed := normalizeRow(*row, sec.viewerID)
	sec.comments = replaceComment(sec.comments, local.ID, confirmed)
	sec.rebuild(ctx)

	return &confirmed, nil
}

// ToggleLike переключает лайк зрителя: оптимистично локально, затем
// like/unlike у коллаборатора, откат переключения при отказе.
func (sec *Section) ToggleLike(ctx context.Context, id int64) error {
	const op = "service/section/ToggleLike"

	lg := log.From(ctx).With("op", op, "comment_id", id)

	if sec.viewerID == 0 {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	sec.mu.Lock()

	c, ok := findComment(sec.comments, id)
	if !ok {
		sec.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	liked := !c.LikedByViewer
	sec.comments = toggleLike(sec.comments, id)
	sec.rebuild(ctx)
	sec.mu.Unlock()

	var err error
	if liked {
		err = sec.svc.storage.LikeComment(ctx, id, sec.viewerID)
	} else {
		err = sec.svc.storage.UnlikeComment(ctx, id, sec.viewerID)
	}

	if err != nil {
		lg.Warn("like toggle failed, reverted", "err", err)

		sec.mu.Lock()
		sec.comments = toggleLike(sec.comments, id)
		sec.rebuild(ctx)
		sec.mu.Unlock()

		return mapStorageErr(op, err)
	}

	return nil
}

// SaveEdit заменяет текст собственного комментария: оптимистичная замена,
// откат при отказе. Адресат упоминания не меняется.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой/слишком длинный текст;
//   - ErrNotFound — записи нет;
//   - ErrForbidden — зритель не автор;
//   - ErrUnavailable / ErrInternal — от коллаборатора.
func (sec *Section) SaveEdit(ctx context.Context, id int64, content string) error {
	const op = "service/section/SaveEdit"

	lg := log.From(ctx).With("op", op, "comment_id", id)

	content, err := sec.validContent(content)
	if err != nil {
		lg.Warn("invalid argument: bad content")
		return fmt.Errorf("%s: %w", op, err)
	}

	sec.mu.Lock()

	c, ok := findComment(sec.comments, id)
	if !ok {
		sec.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if !c.CanEdit() {
		sec.mu.Unlock()
		lg.Warn("edit denied: viewer is not the author")
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	prev := sec.comments
	sec.comments = editContent(sec.comments, id, content)
	sec.rebuild(ctx)
	sec.mu.Unlock()

	if err := sec.svc.storage.UpdateComment(ctx, id, sec.viewerID, content, c.MentionUserID); err != nil {
		lg.Warn("edit failed, reverted", "err", err)

		sec.mu.Lock()
		sec.comments = prev
		sec.rebuild(ctx)
		sec.mu.Unlock()

		return mapStorageErr(op, err)
	}

	return nil
}

// Delete удаляет собственный комментарий и его прямые ответы (каскад ровно
// на один уровень): оптимистичное удаление, восстановление снимка при
// отказе коллаборатора.
func (sec *Section) Delete(ctx context.Context, id int64) error {
	const op = "service/section/Delete"

	lg := log.From(ctx).With("op", op, "comment_id", id)

	sec.mu.Lock()

	c, ok := findComment(sec.comments, id)
	if !ok {
		sec.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if !c.IsOwn {
		sec.mu.Unlock()
		lg.Warn("delete denied: viewer is not the author")
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	prev := sec.comments
	next, removed := deleteCascade(sec.comments, id)
	sec.comments = next
	sec.rebuild(ctx)
	sec.mu.Unlock()

	if err := sec.svc.storage.DeleteComment(ctx, id, sec.viewerID); err != nil {
		lg.Warn("delete failed, restored", "err", err, "removed", removed)

		sec.mu.Lock()
		sec.comments = prev
		sec.rebuild(ctx)
		sec.mu.Unlock()

		return mapStorageErr(op, err)
	}

	lg.Info("comment deleted", "removed", removed)

	return nil
}

// SetHidden скрывает/показывает чужой комментарий. Операция локальная
// (endpoint'а у коллаборатора нет): запись остаётся в списке, рендеринг
// подставляет плейсхолдер вместо Content.
//
// Поведение/ошибки:
//   - ErrNotFound — записи нет;
//   - ErrForbidden — собственный комментарий скрыть нельзя.
func (sec *Section) SetHidden(ctx context.Context, id int64, hidden bool) error {
	const op = "service/section/SetHidden"

	sec.mu.Lock()
	defer sec.mu.Unlock()

	c, ok := findComment(sec.comments, id)
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if !c.CanHide() {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	sec.comments = setHidden(sec.comments, id, hidden)
	sec.rebuild(ctx)

	return nil
}

// validContent нормализует и валидирует пользовательский текст.
func (sec *Section) validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrInvalidArgument
	}

	if utf8.RuneCountInString(content) > sec.svc.cfg.Limits.MaxContent {
		return "", ErrInvalidArgument
	}

	return content, nil
}

// tempID — временный id оптимистичной записи до подтверждения сервером.
func tempID() int64 {
	return time.Now().UnixNano()
}

// mapStorageErr переводит ошибки коллаборатора в сервисные.
func mapStorageErr(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrPostNotFound),
		errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrForbidden):
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	case errors.Is(err, storage.ErrUnavailable):
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}
}
