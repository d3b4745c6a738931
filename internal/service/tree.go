package service

import (
	"github.com/pribylovaa/go-forum-comments/internal/models"
)

// maxLevel — жёсткая граница визуальной вложенности: UI рендерит ровно три
// яруса (корень / ответ / ответ-на-ответ). Более глубокие цепочки
// сплющиваются в соседей, «кому отвечали» сохраняется в MentionUserID.
const maxLevel = 3

// BuildTree строит трёхуровневое дерево из плоского списка.
//
// Детерминированная чистая проекция: одинаковый плоский список даёт
// структурно идентичное дерево независимо от истории; порядок соседей —
// порядок входа. Уровни пересчитываются заново: входной Level — лишь
// подсказка для узлов, чей родитель ещё не обработан.
//
// Алгоритм:
//   - индекс id -> узел строится один раз, подъём по предкам — ограниченный
//     цикл по индексу с visited-set (защита от циклов в битых данных);
//   - корень (ParentID == 0) получает уровень 1;
//   - ребёнок родителя с уровнем < 3 прикрепляется напрямую,
//     Level = parent.Level + 1;
//   - если родитель уже на уровне >= 3, ответ поднимается к ближайшему
//     предку с уровнем < 3 и прижимается к уровню 3 — слишком глубокие
//     цепочки становятся соседями своих родителей;
//   - если подъём оборвался (неизвестный предок, цикл), защитный fallback
//     прикрепляет к непосредственному родителю; замыкающий проход отрезает
//     ответы у всего, что оказалось ниже уровня 3.
//
// Второй результат — id комментариев с неразрешимым ParentID (сироты):
// в дерево они не попадают, логирование — забота вызывающего.
func BuildTree(flat []models.Comment) ([]models.CommentNode, []int64) {
	type slot struct {
		c       models.Comment
		replies []*slot
	}

	index := make(map[int64]*slot, len(flat))
	order := make([]*slot, 0, len(flat))
	for _, c := range flat {
		s := &slot{c: c}
		index[c.ID] = s
		order = append(order, s)
	}

	// Ближайший предок с эффективным уровнем < maxLevel; nil, если цепочка
	// предков оборвалась или зациклилась.
	findAnchor := func(parent *slot) *slot {
		seen := make(map[int64]struct{}, 8)
		cur := parent
		for cur != nil && cur.c.Level >= maxLevel {
			if _, ok := seen[cur.c.ID]; ok {
				return nil
			}
			seen[cur.c.ID] = struct{}{}

			if cur.c.ParentID == 0 {
				return nil
			}
			cur = index[cur.c.ParentID]
		}

		return cur
	}

	roots := make([]*slot, 0)
	var orphans []int64

	for _, s := range order {
		if s.c.ParentID == 0 {
			s.c.Level = 1
			roots = append(roots, s)
			continue
		}

		parent, ok := index[s.c.ParentID]
		if !ok {
			orphans = append(orphans, s.c.ID)
			continue
		}

		if parent.c.Level < maxLevel {
			s.c.Level = parent.c.Level + 1
			parent.replies = append(parent.replies, s)
			continue
		}

		anchor := findAnchor(parent)
		if anchor == nil {
			// Битые данные: предка с уровнем < 3 не нашлось.
			anchor = parent
		}
		s.c.Level = maxLevel
		anchor.replies = append(anchor.replies, s)
	}

	var materialize func(s *slot) models.CommentNode
	materialize = func(s *slot) models.CommentNode {
		node := models.CommentNode{Comment: s.c}
		if len(s.replies) == 0 {
			return node
		}

		node.Replies = make([]models.CommentNode, 0, len(s.replies))
		for _, r := range s.replies {
			child := materialize(r)
			if s.c.Level >= maxLevel {
				// Уровень 3 — жёсткий лист: ниже него ответов не бывает.
				child.Replies = nil
			}
			node.Replies = append(node.Replies, child)
		}

		return node
	}

	tree := make([]models.CommentNode, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, materialize(r))
	}

	return tree, orphans
}
