// Package models содержит доменные сущности comment-секции форумного клиента.
package models

import (
	"time"
)

// CommentRow — строка комментария в том виде, как её отдаёт forum-backend
// (плоская выдача GET /api/comments/tree).
// Важно:
//   - ID/PostID/AuthorID — числовые идентификаторы backend'а;
//   - ParentID == 0 — корневой комментарий;
//   - Level — подсказка сервера о глубине ветки; клиент ей не доверяет
//     (дерево пересчитывает уровни заново, см. BuildTree);
//   - MentionUserID == 0 — ответ без адресата;
//   - AuthorName/AuthorAvatar — денормализованные поля автора;
//   - IsLiked — лайк текущего зрителя (сервер вычисляет по userId запроса).
type CommentRow struct {
	ID            int64
	PostID        int64
	AuthorID      int64
	ParentID      int64
	Level         int32
	Content       string
	MentionUserID int64
	LikesCount    int32
	IsLiked       bool
	IsHidden      bool
	AuthorName    string
	AuthorAvatar  string
	CreatedAt     time.Time
}

// Comment — нормализованная плоская запись комментария, готовая к показу.
// Единственный авторитетный источник состояния секции — плоский список
// таких записей; дерево (CommentNode) — его чистая проекция.
// Важно:
//   - Level — производное поле: всегда равно глубине, вычисленной BuildTree,
//     и никогда не превышает 3;
//   - Content хранится без префикса упоминания; адресат — в MentionUserID;
//   - LikeCount и LikedByViewer меняются только вместе (toggleLike);
//   - IsOwn — производный флаг зрителя (AuthorID == viewerID);
//   - IsHidden скрывает Content при рендеринге, сама запись остаётся.
type Comment struct {
	ID            int64
	PostID        int64
	AuthorID      int64
	ParentID      int64
	Level         int32
	Content       string
	MentionUserID int64
	AuthorName    string
	AuthorAvatar  string
	LikeCount     int32
	LikedByViewer bool
	IsHidden      bool
	IsOwn         bool
	CreatedAt     time.Time
}

// CanEdit — редактировать может только автор.
func (c Comment) CanEdit() bool {
	return c.IsOwn
}

// CanHide — скрывать/показывать могут только не-авторы.
func (c Comment) CanHide() bool {
	return !c.IsOwn
}

// CommentNode — узел дерева: комментарий плюс прямые ответы.
// Принадлежит исключительно выводу BuildTree; никогда не мутируется на
// месте — каждая перестройка порождает свежее дерево из плоского списка.
type CommentNode struct {
	Comment
	Replies []CommentNode
}

// ReplyDraft — черновик ответа, ключуется id контейнера (комментария, под
// которым живёт поле ввода).
// Жизненный цикл: создаётся по «ответить», очищается по отправке; никогда
// не персистится.
//   - Text — свободный текст без префикса упоминания;
//   - MentionLabel — видимый префикс вида "@Имя" (пуст, если упоминания нет);
//   - MentionUserID — адресат будущего ответа (0 — нет);
//   - FocusSeq — монотонный счётчик для перефокусировки поля ввода:
//     повторный клик «ответить» по той же цели инкрементирует его, даже
//     если содержимое черновика не изменилось.
type ReplyDraft struct {
	Text          string
	MentionLabel  string
	MentionUserID int64
	FocusSeq      int32
}

// Visible возвращает видимое содержимое поля ввода: "<label> <text>" при
// активном упоминании и ровно Text без него.
func (d ReplyDraft) Visible() string {
	if d.MentionLabel == "" {
		return d.Text
	}

	return d.MentionLabel + " " + d.Text
}
