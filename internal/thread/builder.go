// Package thread — чистое ядро обсуждений: построение дерева, ранжирование ответов,
// правила отзыва и закрепления, пагинация и плоская проекция для отрисовки.
//
// Пакет не ходит в сеть и не держит состояния между вызовами: на вход подаётся снимок
// комментариев одного материала, на выход — новые производные структуры. Входной срез
// никогда не модифицируется.
package thread

import (
	"sort"

	"github.com/pribylovaa/go-news-discussions/internal/models"
)

// Значения глубины по умолчанию.
const (
	DefaultMaxDepthGeneral = 3
	DefaultMaxDepthForum   = 2
)

// DepthPolicy выбирает максимальную глубину для материала.
// Точка расширения: вызывающий может подменить политику целиком.
type DepthPolicy func(item *models.ContentItem) int

// KindDepthPolicy — политика «по типу материала»: форумные темы мельче обычных постов.
func KindDepthPolicy(general, forum int) DepthPolicy {
	return func(item *models.ContentItem) int {
		if item != nil && item.Kind == models.KindForum {
			return forum
		}

		return general
	}
}

// BuildOptions — параметры построения леса.
type BuildOptions struct {
	// MaxDepth — глубина, глубже которой ветки сплющиваются. Значения < 1 трактуются как 1.
	MaxDepth int
	// Order — порядок комментариев верхнего уровня по дате создания.
	Order models.SortOrder
}

// ReplyTarget — исходный непосредственный родитель узла (для «в ответ @X»).
// Сохраняется даже тогда, когда узел прицеплен к более высокому предку.
type ReplyTarget struct {
	CommentID int64
	AuthorID  int64
	Comment   *models.Comment
}

// Node — вершина построенного дерева.
//   - Depth — отображаемая глубина (1 — верхний уровень), min(истинная, MaxDepth);
//   - Children — узлы, прицепленные к этому узлу, в хронологическом порядке. У узла
//     глубины MaxDepth сюда попадают все сплющенные потомки, а не только прямые ответы;
//   - ReplyTo — nil для верхнего уровня и для «осиротевших» комментариев.
type Node struct {
	Comment  *models.Comment
	Depth    int
	ReplyTo  *ReplyTarget
	Children []*Node

	trueDepth int
	attached  *Node
	replies   []*Node
}

// ID — сокращение для Comment.ID.
func (n *Node) ID() int64 { return n.Comment.ID }

// Replies возвращает прямые ответы на комментарий в хронологическом порядке.
// В отличие от Children, не зависит от сплющивания: ранжирование и окно
// применяются именно к этой группе.
func (n *Node) Replies() []*Node {
	out := make([]*Node, len(n.replies))
	copy(out, n.replies)
	return out
}

// Forest — результат BuildTree: упорядоченный верхний уровень плюс индекс по id.
type Forest struct {
	opts  BuildOptions
	top   []*Node
	index map[int64]*Node
	kids  map[int64][]*Node

	// Orphans — комментарии, чей родитель не найден в снимке (или образует цикл);
	// они подняты на верхний уровень. Сигнал о качестве данных, не ошибка.
	Orphans []int64
	// Duplicates — повторные id во входном снимке (учитывается только первое вхождение).
	Duplicates []int64
}

// BuildTree собирает лес из плоского списка комментариев одного материала.
//
// Алгоритм (arena + index):
//  1. копируем комментарии в арену и строим индекс id -> позиция;
//  2. одним проходом группируем детей по родителю; отсутствующий родитель,
//     родитель с другого материала или ссылка на себя — узел уходит на верхний уровень;
//  3. обходим в ширину от корней, назначая истинную глубину; узел глубже MaxDepth
//     цепляется к ближайшему предку, стоящему ровно на MaxDepth, и получает ту же глубину;
//  4. узлы, не достижимые от корней (цикл), поднимаются на верхний уровень.
func BuildTree(comments []models.Comment, opts BuildOptions) *Forest {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}
	if opts.Order != models.OrderDesc {
		opts.Order = models.OrderAsc
	}

	f := &Forest{
		opts:  opts,
		index: make(map[int64]*Node, len(comments)),
		kids:  make(map[int64][]*Node),
	}

	arena := make([]models.Comment, 0, len(comments))
	nodes := make([]*Node, 0, len(comments))
	for i := range comments {
		if _, dup := f.index[comments[i].ID]; dup {
			f.Duplicates = append(f.Duplicates, comments[i].ID)
			continue
		}

		arena = append(arena, comments[i])
		n := &Node{Comment: &arena[len(arena)-1]}
		nodes = append(nodes, n)
		f.index[n.ID()] = n
	}

	// Дети в хронологическом порядке: от этого порядка отталкивается стабильная сортировка ранжирования.
	sort.SliceStable(nodes, func(i, j int) bool { return chronoLess(nodes[i].Comment, nodes[j].Comment) })

	var roots []*Node
	for _, n := range nodes {
		c := n.Comment
		if c.ParentID == 0 {
			roots = append(roots, n)
			continue
		}

		parent, ok := f.index[c.ParentID]
		if !ok || parent == n || parent.Comment.ContentItemID != c.ContentItemID {
			f.Orphans = append(f.Orphans, c.ID)
			roots = append(roots, n)
			continue
		}

		f.kids[parent.ID()] = append(f.kids[parent.ID()], n)
	}

	visited := make(map[int64]struct{}, len(nodes))
	for _, r := range roots {
		f.plant(r, visited)
	}

	// Всё, что не достигнуто от корней, сидит в цикле родительских ссылок.
	for _, n := range nodes {
		if _, ok := visited[n.ID()]; ok {
			continue
		}

		f.Orphans = append(f.Orphans, n.ID())
		roots = append(roots, n)
		f.plant(n, visited)
	}

	f.top = roots
	f.sortTop()

	return f
}

// plant делает r корнем и расставляет глубины его потомкам обходом в ширину.
func (f *Forest) plant(r *Node, visited map[int64]struct{}) {
	r.Depth, r.trueDepth, r.attached, r.ReplyTo = 1, 1, nil, nil
	visited[r.ID()] = struct{}{}

	queue := []*Node{r}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		for _, child := range f.kids[parent.ID()] {
			if _, seen := visited[child.ID()]; seen {
				continue
			}
			visited[child.ID()] = struct{}{}

			child.trueDepth = parent.trueDepth + 1
			child.ReplyTo = &ReplyTarget{
				CommentID: parent.ID(),
				AuthorID:  parent.Comment.AuthorID,
				Comment:   parent.Comment,
			}

			anchor := parent
			if child.trueDepth > f.opts.MaxDepth && parent.trueDepth > f.opts.MaxDepth {
				// Родитель уже сплющен и висит на предке глубины MaxDepth.
				anchor = parent.attached
			}

			child.attached = anchor
			child.Depth = min(child.trueDepth, f.opts.MaxDepth)
			anchor.Children = append(anchor.Children, child)
			parent.replies = append(parent.replies, child)

			queue = append(queue, child)
		}
	}
}

// sortTop упорядочивает верхний уровень по дате (tie-break — id в том же направлении).
func (f *Forest) sortTop() {
	desc := f.opts.Order == models.OrderDesc
	sort.SliceStable(f.top, func(i, j int) bool {
		if desc {
			return chronoLess(f.top[j].Comment, f.top[i].Comment)
		}

		return chronoLess(f.top[i].Comment, f.top[j].Comment)
	})

	// Сплющенные группы собираются в порядке обхода в ширину — вернём им хронологию.
	for _, n := range f.index {
		if len(n.Children) > 1 {
			sort.SliceStable(n.Children, func(i, j int) bool {
				return chronoLess(n.Children[i].Comment, n.Children[j].Comment)
			})
		}
	}
}

// chronoLess — хронологический порядок с id в качестве tie-break.
func chronoLess(a, b *models.Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}

	return a.ID < b.ID
}

// MaxDepth — глубина, с которой строился лес.
func (f *Forest) MaxDepth() int { return f.opts.MaxDepth }

// Order — порядок верхнего уровня, с которым строился лес.
func (f *Forest) Order() models.SortOrder { return f.opts.Order }

// Len — число узлов в лесу.
func (f *Forest) Len() int { return len(f.index) }

// TopLevel возвращает копию упорядоченного верхнего уровня (без учёта закрепления).
func (f *Forest) TopLevel() []*Node {
	out := make([]*Node, len(f.top))
	copy(out, f.top)
	return out
}

// Node возвращает узел по id.
func (f *Forest) Node(id int64) (*Node, bool) {
	n, ok := f.index[id]
	return n, ok
}

// Root возвращает предка верхнего уровня для комментария id.
func (f *Forest) Root(id int64) (*Node, bool) {
	n, ok := f.index[id]
	if !ok {
		return nil, false
	}

	for n.attached != nil {
		n = n.attached
	}

	return n, true
}

// Subtree возвращает узел id и всех его истинных потомков (в порядке обхода в глубину).
func (f *Forest) Subtree(id int64) []*Node {
	n, ok := f.index[id]
	if !ok {
		return nil
	}

	visited := map[int64]struct{}{n.ID(): {}}
	out := []*Node{n}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range f.kids[cur.ID()] {
			if _, seen := visited[child.ID()]; seen {
				continue
			}
			visited[child.ID()] = struct{}{}
			out = append(out, child)
			stack = append(stack, child)
		}
	}

	return out
}
