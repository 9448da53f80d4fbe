package thread

import (
	"fmt"
	"sort"
)

// DefaultReplyWindow — сколько ответов показывается до «показать ещё N».
const DefaultReplyWindow = 3

// TieBreak — как упорядочивать ответы с равным числом голосов.
type TieBreak string

const (
	// TieChronological — равные по голосам ответы остаются в хронологическом порядке.
	TieChronological TieBreak = "chronological"
	// TieNewestFirst — при равенстве голосов выше более новый ответ.
	TieNewestFirst TieBreak = "newest"
)

// ParseTieBreak разбирает значение из конфигурации.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case "", TieChronological:
		return TieChronological, nil
	case TieNewestFirst:
		return TieNewestFirst, nil
	default:
		return "", fmt.Errorf("unknown tie break %q", s)
	}
}

// RankOptions — параметры ранжирования одной группы ответов.
type RankOptions struct {
	// Window — сколько первых ответов видимы. Значение <= 0 отключает окно.
	Window   int
	TieBreak TieBreak
}

// Rank — позиция ответа в отранжированной группе: «#Position из Total».
type Rank struct {
	Position int
	Total    int
}

// RankedChildren — отранжированная группа ответов одного родителя.
// Скрытые ответы не отбрасываются: они остаются в Hidden, чтобы клиент мог раскрыть их без запроса.
type RankedChildren struct {
	Visible     []*Node
	Hidden      []*Node
	HiddenCount int
}

// Ordered возвращает всю группу в ранжированном порядке: сначала видимые, затем скрытые.
func (r RankedChildren) Ordered() []*Node {
	out := make([]*Node, 0, len(r.Visible)+len(r.Hidden))
	out = append(out, r.Visible...)
	return append(out, r.Hidden...)
}

// RankOf возвращает ранг узла id в группе и признак попадания в скрытую часть.
func (r RankedChildren) RankOf(id int64) (Rank, bool, bool) {
	total := len(r.Visible) + len(r.Hidden)
	for i, n := range r.Visible {
		if n.ID() == id {
			return Rank{Position: i + 1, Total: total}, false, true
		}
	}
	for i, n := range r.Hidden {
		if n.ID() == id {
			return Rank{Position: len(r.Visible) + i + 1, Total: total}, true, true
		}
	}

	return Rank{}, false, false
}

// RankChildren упорядочивает ответы по числу голосов (по убыванию) и применяет окно.
//
// Сортировка стабильная поверх хронологического порядка (по возрастанию даты, затем id),
// поэтому равные по ключу ответы не «прыгают» между перерисовками. Входной срез не меняется.
func RankChildren(children []*Node, opts RankOptions) RankedChildren {
	ordered := make([]*Node, len(children))
	copy(ordered, children)

	sort.SliceStable(ordered, func(i, j int) bool {
		return chronoLess(ordered[i].Comment, ordered[j].Comment)
	})

	votes := make(map[int64]int, len(ordered))
	for _, n := range ordered {
		votes[n.ID()] = VoteCount(n.Comment)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if va, vb := votes[a.ID()], votes[b.ID()]; va != vb {
			return va > vb
		}
		if opts.TieBreak == TieNewestFirst {
			return a.Comment.CreatedAt.After(b.Comment.CreatedAt)
		}

		return false
	})

	if opts.Window <= 0 || len(ordered) <= opts.Window {
		return RankedChildren{Visible: ordered}
	}

	return RankedChildren{
		Visible:     ordered[:opts.Window:opts.Window],
		Hidden:      ordered[opts.Window:],
		HiddenCount: len(ordered) - opts.Window,
	}
}
