package service

// Тесты координатора черновиков (internal/service/drafts.go).
//
//  Сценарии:
//  - выбор контейнера: цель уровня 3 перенаправляет ответ в контейнер
//    родителя;
//  - StartReply формирует префикс "@Имя" и наращивает FocusSeq;
//  - живой префикс: видимое = "<label> <text>", в Text только остаток;
//  - повреждение префикса удаляет упоминание атомарно, остаток метки не
//    просачивается в текст;
//  - ClearMention сохраняет текст;
//  - набор без предварительного «ответить».

import (
	"testing"

	"github.com/pribylovaa/go-forum-comments/internal/models"
	"github.com/stretchr/testify/require"
)

func TestContainerFor_Routing(t *testing.T) {
	root := models.Comment{ID: 1, Level: 1}
	mid := models.Comment{ID: 2, ParentID: 1, Level: 2}
	leaf := models.Comment{ID: 3, ParentID: 2, Level: 3}

	require.EqualValues(t, 1, ContainerFor(root))
	require.EqualValues(t, 2, ContainerFor(mid))
	// Ответ на лист живёт в поле ввода родителя.
	require.EqualValues(t, 2, ContainerFor(leaf))
}

func TestDrafts_StartReply_PrefixAndFocus(t *testing.T) {
	d := NewDrafts()
	target := models.Comment{ID: 5, AuthorID: 42, AuthorName: "Trần Thị B", Level: 2, ParentID: 1}

	container := d.StartReply(target)
	require.EqualValues(t, 5, container)

	dr, ok := d.Get(container)
	require.True(t, ok)
	require.Equal(t, "@Trần Thị B", dr.MentionLabel)
	require.EqualValues(t, 42, dr.MentionUserID)
	require.Equal(t, "", dr.Text)
	require.EqualValues(t, 1, dr.FocusSeq)
	require.Equal(t, "@Trần Thị B ", dr.Visible())

	// Повторный клик «ответить» — содержимое то же, фокус перезапрошен.
	d.StartReply(target)
	dr, _ = d.Get(container)
	require.EqualValues(t, 2, dr.FocusSeq)
}

func TestDrafts_EditText_LivePrefix(t *testing.T) {
	d := NewDrafts()
	target := models.Comment{ID: 5, AuthorID: 42, AuthorName: "Trần Thị B", Level: 2, ParentID: 1}
	container := d.StartReply(target)

	d.EditText(container, "@Trần Thị B Đồng ý")

	dr, _ := d.Get(container)
	require.Equal(t, "Đồng ý", dr.Text)
	require.Equal(t, "@Trần Thị B", dr.MentionLabel)
	require.EqualValues(t, 42, dr.MentionUserID)
	require.Equal(t, "@Trần Thị B Đồng ý", dr.Visible())
}

// Backspace на границе префикса: "@Trần Thị BĐồng ý" — метка повреждена,
// упоминание снимается целиком, в тексте остаётся только набранное.
func TestDrafts_EditText_DamagedPrefixDropsMention(t *testing.T) {
	d := NewDrafts()
	target := models.Comment{ID: 5, AuthorID: 42, AuthorName: "Trần Thị B", Level: 2, ParentID: 1}
	container := d.StartReply(target)
	d.EditText(container, "@Trần Thị B Đồng ý")

	d.EditText(container, "@Trần Thị BĐồng ý")

	dr, _ := d.Get(container)
	require.Equal(t, "", dr.MentionLabel)
	require.EqualValues(t, 0, dr.MentionUserID)
	require.Equal(t, "Đồng ý", dr.Text)
	require.Equal(t, "Đồng ý", dr.Visible())
}

// Полное стирание поля: черновик пуст, упоминания нет.
func TestDrafts_EditText_EraseAll(t *testing.T) {
	d := NewDrafts()
	target := models.Comment{ID: 5, AuthorID: 42, AuthorName: "Alice", Level: 1}
	container := d.StartReply(target)

	d.EditText(container, "")

	dr, _ := d.Get(container)
	require.Equal(t, "", dr.MentionLabel)
	require.EqualValues(t, 0, dr.MentionUserID)
	require.Equal(t, "", dr.Text)
}

func TestDrafts_ClearMention_KeepsText(t *testing.T) {
	d := NewDrafts()
	target := models.Comment{ID: 5, AuthorID: 42, AuthorName: "Alice", Level: 1}
	container := d.StartReply(target)
	d.EditText(container, "@Alice hello")

	d.ClearMention(container)

	dr, _ := d.Get(container)
	require.Equal(t, "", dr.MentionLabel)
	require.EqualValues(t, 0, dr.MentionUserID)
	require.Equal(t, "hello", dr.Text)
	require.Equal(t, "hello", dr.Visible())
}

// Набор в контейнере, где «ответить» не нажимали: обычный черновик без
// упоминания.
func TestDrafts_EditText_NoPriorDraft(t *testing.T) {
	d := NewDrafts()

	d.EditText(7, "просто текст")

	dr, ok := d.Get(7)
	require.True(t, ok)
	require.Equal(t, "просто текст", dr.Text)
	require.Equal(t, "", dr.MentionLabel)
}

func TestDrafts_ClearAndRestore(t *testing.T) {
	d := NewDrafts()
	target := models.Comment{ID: 5, AuthorID: 42, AuthorName: "Alice", Level: 1}
	container := d.StartReply(target)
	d.EditText(container, "@Alice hi")

	saved, _ := d.Get(container)
	d.Clear(container)
	_, ok := d.Get(container)
	require.False(t, ok)

	d.put(container, saved)
	restored, ok := d.Get(container)
	require.True(t, ok)
	require.Equal(t, saved, restored)
}
