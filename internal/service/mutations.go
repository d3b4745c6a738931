package service

import (
	"github.com/pribylovaa/go-forum-comments/internal/models"
)

// Чистые переходы над плоским списком комментариев.
//
// Каждый переход возвращает свежий срез, исходный не мутируется:
// детерминизм перестройки дерева опирается на то, что BuildTree всегда
// видит согласованный снимок списка.

// appendComment добавляет запись в конец списка.
func appendComment(list []models.Comment, c models.Comment) []models.Comment {
	out := make([]models.Comment, 0, len(list)+1)
	out = append(out, list...)

	return append(out, c)
}

// replaceComment заменяет запись с данным id (подтверждение optimistic-записи
// серверной версией).
func replaceComment(list []models.Comment, id int64, c models.Comment) []models.Comment {
	out := make([]models.Comment, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i] = c
		}
	}

	return out
}

// editContent заменяет текст записи с данным id.
func editContent(list []models.Comment, id int64, content string) []models.Comment {
	out := make([]models.Comment, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Content = content
		}
	}

	return out
}

// deleteCascade удаляет запись и её прямые ответы — каскад ровно на один
// уровень, по модели сплющенного трёхъярусного дерева: глубже, чем
// записано в существующих ParentID, каскад не идёт.
func deleteCascade(list []models.Comment, id int64) (out []models.Comment, removed int) {
	out = make([]models.Comment, 0, len(list))
	for _, c := range list {
		if c.ID == id || c.ParentID == id {
			removed++
			continue
		}
		out = append(out, c)
	}

	return out, removed
}

// toggleLike переключает лайк зрителя: флаг и счётчик меняются только
// вместе и никогда не расходятся.
func toggleLike(list []models.Comment, id int64) []models.Comment {
	out := make([]models.Comment, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID != id {
			continue
		}

		if out[i].LikedByViewer {
			out[i].LikedByViewer = false
			out[i].LikeCount--
		} else {
			out[i].LikedByViewer = true
			out[i].LikeCount++
		}
	}

	return out
}

// setHidden выставляет флаг скрытия; Content остаётся в записи, плейсхолдер
// подставляет слой рендеринга.
func setHidden(list []models.Comment, id int64, hidden bool) []models.Comment {
	out := make([]models.Comment, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].IsHidden = hidden
		}
	}

	return out
}

// findComment возвращает запись с данным id.
func findComment(list []models.Comment, id int64) (models.Comment, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}

	return models.Comment{}, false
}
