package service

import (
	"strings"

	"github.com/pribylovaa/go-forum-comments/internal/models"
)

// Drafts — координатор черновиков ответов и упоминаний.
//
// Состояние ключуется id контейнера — комментария, под которым живёт поле
// ввода. Инвариант: видимое содержимое поля всегда "<label> <text>" при
// активном упоминании и ровно text без него; координатор восстанавливает
// обе стороны без потерь. Не синхронизирован — владелец (Section) держит
// свой мьютекс.
type Drafts struct {
	byContainer map[int64]*models.ReplyDraft
}

// NewDrafts создаёт пустой координатор.
func NewDrafts() *Drafts {
	return &Drafts{byContainer: make(map[int64]*models.ReplyDraft)}
}

// ContainerFor вычисляет контейнер ответа на target: у листового уровня
// нет собственного поля ввода, ответ уходит в контейнер родителя.
func ContainerFor(target models.Comment) int64 {
	if target.Level >= maxLevel && target.ParentID != 0 {
		return target.ParentID
	}

	return target.ID
}

// StartReply создаёт черновик с префиксом "@Имя автора", заменяя
// существующий черновик контейнера, и возвращает id контейнера.
// FocusSeq растёт даже при неизменном содержимом: повторный клик
// «ответить» по той же цели обязан перефокусировать поле ввода.
func (d *Drafts) StartReply(target models.Comment) int64 {
	container := ContainerFor(target)

	var seq int32
	if prev, ok := d.byContainer[container]; ok {
		seq = prev.FocusSeq
	}

	d.byContainer[container] = &models.ReplyDraft{
		MentionLabel:  "@" + target.AuthorName,
		MentionUserID: target.AuthorID,
		FocusSeq:      seq + 1,
	}

	return container
}

// Get возвращает копию черновика контейнера.
func (d *Drafts) Get(container int64) (models.ReplyDraft, bool) {
	dr, ok := d.byContainer[container]
	if !ok {
		return models.ReplyDraft{}, false
	}

	return *dr, true
}

// EditText применяет «сырое» содержимое поля ввода к черновику.
//
// Пока raw начинается с полного префикса "<label> ", упоминание живо и в
// Text попадает только остаток. Как только префикс повреждён (backspace
// на границе), упоминание удаляется атомарно: поля адресата очищаются, а
// уцелевший кусок метки отрезается от текста — ответ становится обычным,
// без метаданных адресата.
func (d *Drafts) EditText(container int64, raw string) {
	dr, ok := d.byContainer[container]
	if !ok {
		// Набор в контейнере без «ответить» — черновик без упоминания.
		d.byContainer[container] = &models.ReplyDraft{Text: raw}
		return
	}

	if dr.MentionLabel == "" {
		dr.Text = raw
		return
	}

	prefix := dr.MentionLabel + " "
	if strings.HasPrefix(raw, prefix) {
		dr.Text = raw[len(prefix):]
		return
	}

	rest := raw[commonPrefixLen(raw, prefix):]
	dr.MentionLabel = ""
	dr.MentionUserID = 0
	dr.Text = strings.TrimLeft(rest, " ")
}

// ClearMention сбрасывает упоминание, не трогая текст черновика.
func (d *Drafts) ClearMention(container int64) {
	if dr, ok := d.byContainer[container]; ok {
		dr.MentionLabel = ""
		dr.MentionUserID = 0
	}
}

// Clear удаляет черновик контейнера (после отправки).
func (d *Drafts) Clear(container int64) {
	delete(d.byContainer, container)
}

// put восстанавливает черновик (откат неудачной отправки).
func (d *Drafts) put(container int64, dr models.ReplyDraft) {
	cp := dr
	d.byContainer[container] = &cp
}

// commonPrefixLen — длина общего префикса a и b в байтах.
func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}

	return n
}
