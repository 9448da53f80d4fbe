// dto — JSON-представления REST API discussion-service.
package dto

type Author struct {
	ID        int64  `json:"id,omitempty"` // 0 — гость или удалённый аккаунт
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsGuest   bool   `json:"is_guest"`
	IsDeleted bool   `json:"is_deleted"`
}

type ReplyTo struct {
	CommentID  int64  `json:"comment_id"`
	AuthorName string `json:"author_name"`
	Excerpt    string `json:"excerpt"`
}

type Rank struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}

// Comment — узел плоской последовательности для отрисовки.
type Comment struct {
	ID                 int64    `json:"id"`
	ParentID           int64    `json:"parent_id"` // 0 — верхний уровень
	Depth              int      `json:"depth"`     // 1 — верхний уровень
	ReplyTo            *ReplyTo `json:"reply_to,omitempty"`
	Author             Author   `json:"author"`
	Body               string   `json:"body"`
	CreatedAt          int64    `json:"created_at"` // Unix UTC
	IsPinned           bool     `json:"is_pinned"`
	IsRetracted        bool     `json:"is_retracted"`
	IsAuthorDeleted    bool     `json:"is_author_deleted"`
	VoteCount          int      `json:"vote_count"`
	UserHasVoted       bool     `json:"user_has_voted"`
	CanReply           bool     `json:"can_reply"`
	CanModerate        bool     `json:"can_moderate"`
	CanRestore         bool     `json:"can_restore"`
	HiddenRepliesCount int      `json:"hidden_replies_count"`
	Hidden             bool     `json:"hidden"`
	Rank               *Rank    `json:"rank,omitempty"`
}

type Focus struct {
	CommentID int64 `json:"comment_id"`
	Rank      Rank  `json:"rank"`
	Hidden    bool  `json:"hidden"`
}

type ThreadPageResponse struct {
	ItemID        int64     `json:"item_id"`
	Page          int       `json:"page"`
	PageSize      int       `json:"page_size"`
	TotalPages    int       `json:"total_pages"`
	TotalTopLevel int       `json:"total_top_level"`
	PinnedID      int64     `json:"pinned_id,omitempty"`
	CommentsOpen  bool      `json:"comments_open"`
	CommentsURL   string    `json:"comments_url"`
	Focus         *Focus    `json:"focus,omitempty"`
	Comments      []Comment `json:"comments"`
}

type PermalinkResponse struct {
	CommentID int64  `json:"comment_id"`
	ItemID    int64  `json:"item_id"`
	Page      int    `json:"page,omitempty"` // 0 — комментарий вне снимка
	URL       string `json:"url"`
}

type VoteResponse struct {
	CommentID int64 `json:"comment_id"`
	Voted     bool  `json:"voted"`
	VoteCount int   `json:"vote_count"`
}

type RollupResponse struct {
	CommentID int64 `json:"comment_id"`
	RootID    int64 `json:"root_id"`
	Total     int   `json:"total"`
	Cached    bool  `json:"cached"`
}

type ThreadSummary struct {
	RootID      int64 `json:"root_id"`
	AuthorID    int64 `json:"author_id"`
	CreatedAt   int64 `json:"created_at"` // Unix UTC
	IsRetracted bool  `json:"is_retracted"`
	Rollup      int   `json:"rollup"`
	Replies     int   `json:"replies"`
}

type TopThreadsResponse struct {
	ItemID  int64           `json:"item_id"`
	Threads []ThreadSummary `json:"threads"`
}

type RetractResponse struct {
	CommentID  int64 `json:"comment_id"`
	Changed    bool  `json:"changed"`
	PinCleared bool  `json:"pin_cleared"`
}

type RestoreResponse struct {
	CommentID int64 `json:"comment_id"`
	Changed   bool  `json:"changed"`
}

// SetPinRequest — тело PUT /items/{item_id}/pin; comment_id: null снимает закрепление.
type SetPinRequest struct {
	CommentID *int64 `json:"comment_id"`
}

type PinResponse struct {
	ItemID    int64 `json:"item_id"`
	CommentID int64 `json:"comment_id"` // 0 — ничего не закреплено
}
