package thread

import (
	"net/url"
	"strconv"
	"strings"
)

// Сегменты ссылок по умолчанию.
const (
	DefaultCommentsSegment = "comments"
	DefaultPageSegment     = "page"
)

// PageCount — число страниц для total комментариев верхнего уровня (минимум 1).
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= pageSize {
		return 1
	}

	return (total-1)/pageSize + 1
}

// PageOf — номер страницы для порядкового номера ordinal (с 1).
func PageOf(ordinal, pageSize int) int {
	if pageSize <= 0 || ordinal <= 0 {
		return 1
	}

	return (ordinal-1)/pageSize + 1
}

// ResolvePage вычисляет страницу, на которой отрисуется комментарий id.
//
// Берётся предок верхнего уровня и его позиция в полном порядке верхнего уровня
// БЕЗ учёта закрепления: номер страницы не должен зависеть от того, что закреплено сейчас.
func ResolvePage(f *Forest, id int64, pageSize int) (int, bool) {
	root, ok := f.Root(id)
	if !ok {
		return 0, false
	}

	for i, n := range f.top {
		if n == root {
			return PageOf(i+1, pageSize), true
		}
	}

	return 0, false
}

// Paginate возвращает срез верхнего уровня для страницы page (с 1).
// Страница за пределами диапазона даёт пустой результат.
func Paginate(top []*Node, page, pageSize int) []*Node {
	if pageSize <= 0 {
		if page == 1 {
			return top
		}
		return nil
	}
	if page < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(top) {
		return nil
	}

	end := min(start+pageSize, len(top))
	return top[start:end]
}

// WithPinnedFirst переносит закреплённый узел в начало порядка (до пагинации).
// Если pinnedID нет среди top, порядок возвращается без изменений.
func WithPinnedFirst(top []*Node, pinnedID int64) []*Node {
	out := make([]*Node, 0, len(top))
	if pinnedID == 0 {
		return append(out, top...)
	}

	var pinned *Node
	for _, n := range top {
		if n.ID() == pinnedID {
			pinned = n
			continue
		}
		out = append(out, n)
	}

	if pinned == nil {
		return out
	}

	return append([]*Node{pinned}, out...)
}

// Permalink собирает канонические ссылки на комментарии.
type Permalink struct {
	CommentsSegment string
	PageSegment     string
}

func (p Permalink) segments() (string, string) {
	comments, page := p.CommentsSegment, p.PageSegment
	if comments == "" {
		comments = DefaultCommentsSegment
	}
	if page == "" {
		page = DefaultPageSegment
	}

	return comments, page
}

// CommentsURL — ссылка на раздел комментариев материала без якоря.
func (p Permalink) CommentsURL(itemURL string) string {
	comments, _ := p.segments()
	return compose(itemURL, []string{comments}, "")
}

// Build — {itemURL}/{comments}[/{page}/{N}]#comment-{id}. Сегмент страницы только при N > 1.
func (p Permalink) Build(itemURL string, page int, commentID int64) string {
	comments, pageSeg := p.segments()

	segs := []string{comments}
	if page > 1 {
		segs = append(segs, pageSeg, strconv.Itoa(page))
	}

	return compose(itemURL, segs, "comment-"+strconv.FormatInt(commentID, 10))
}

// compose добавляет сегменты к пути itemURL, убирает пустые и подряд идущие одинаковые сегменты.
func compose(itemURL string, extra []string, fragment string) string {
	u, err := url.Parse(strings.TrimSpace(itemURL))
	if err != nil {
		u = &url.URL{Path: itemURL}
	}

	parts := strings.Split(u.Path, "/")
	for _, s := range extra {
		parts = append(parts, strings.Split(s, "/")...)
	}

	clean := make([]string, 0, len(parts))
	for _, s := range parts {
		if s == "" {
			continue
		}
		if len(clean) > 0 && clean[len(clean)-1] == s {
			continue
		}
		clean = append(clean, s)
	}

	u.Path = "/" + strings.Join(clean, "/")
	u.RawPath = ""
	u.Fragment = fragment
	u.RawFragment = ""

	return u.String()
}
