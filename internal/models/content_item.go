package models

// ContentKind — тип материала, которому принадлежит ветка обсуждения.
type ContentKind string

const (
	KindGeneral ContentKind = "general"
	KindForum   ContentKind = "forum"
)

// SortOrder — порядок комментариев верхнего уровня по дате создания.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder разбирает строку запроса; пустая или неизвестная строка даёт ok=false.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case OrderAsc:
		return OrderAsc, true
	case OrderDesc:
		return OrderDesc, true
	default:
		return "", false
	}
}

// ContentItem — материал (пост/тема форума), владеющий деревом комментариев.
//   - TopLevelOrder и CommentsPerPage — настройки материала, пустые значения
//     заменяются дефолтами из конфигурации;
//   - PinnedCommentID — единственная запись о закреплении (0 — ничего не закреплено).
type ContentItem struct {
	ID              int64       `bson:"_id"`
	AuthorID        int64       `bson:"author_id"`
	Kind            ContentKind `bson:"kind"`
	URL             string      `bson:"url"`
	TopLevelOrder   SortOrder   `bson:"top_level_order,omitempty"`
	CommentsPerPage int         `bson:"comments_per_page,omitempty"`
	CommentsOpen    bool        `bson:"comments_open"`
	PinnedCommentID int64       `bson:"pinned_comment_id"`
}
