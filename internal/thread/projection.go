package thread

import (
	"time"

	"github.com/pribylovaa/go-news-discussions/internal/models"
)

// Тексты-заглушки проекции.
const (
	RetractedPlaceholder      = "This comment has been withdrawn by its author or a moderator."
	DeletedAccountPlaceholder = "This account no longer exists."
	DeletedUserName           = "deleted user"
	GuestName                 = "guest"
)

// AuthorBadge — то, что показывается вместо автора.
// Для удалённого аккаунта имя, аватар и id не раскрываются.
type AuthorBadge struct {
	ID        int64
	Name      string
	AvatarURL string
	Guest     bool
	Deleted   bool
}

// ReplyToView — «в ответ @X»: исходный родитель даже для сплющенных веток.
type ReplyToView struct {
	CommentID  int64
	AuthorName string
	Excerpt    string
}

// DisplayNode — узел плоской последовательности для отрисовки.
type DisplayNode struct {
	ID        int64
	ParentID  int64
	Depth     int
	ReplyTo   *ReplyToView
	Author    AuthorBadge
	Body      string
	CreatedAt time.Time

	IsPinned        bool
	IsRetracted     bool
	IsAuthorDeleted bool
	VoteCount       int
	UserHasVoted    bool

	CanReply    bool
	CanModerate bool
	CanRestore  bool

	HiddenRepliesCount int
	Hidden             bool
	// Rank — позиция среди ответов родителя; nil для верхнего уровня.
	Rank *Rank
}

// ProjectOptions — всё, что нужно проекции помимо леса.
type ProjectOptions struct {
	Viewer   Actor
	Item     *models.ContentItem
	Accounts map[int64]models.Account

	Page     int
	PageSize int
	Rank     RankOptions

	// IncludeHidden — выдавать ли ответы за пределами окна (с флагом Hidden).
	IncludeHidden bool
	// FocusID — комментарий, для которого нужно сообщить ранг, даже если он скрыт.
	FocusID    int64
	ExcerptLen int
}

// Focus — ранг запрошенного комментария. Окно из-за него не отключается.
type Focus struct {
	CommentID int64
	Rank      Rank
	Hidden    bool
}

// Projection — одна страница обсуждения.
type Projection struct {
	Nodes         []DisplayNode
	Page          int
	TotalPages    int
	TotalTopLevel int
	PinnedID      int64
	Focus         *Focus
}

// Project обходит страницу верхнего уровня в глубину и собирает плоскую последовательность.
// Порядок: закреплённый комментарий первым, затем верхний уровень по дате; ответы каждого
// родителя в ранжированном порядке, скрытые после видимых.
func Project(f *Forest, opts ProjectOptions) Projection {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.ExcerptLen == 0 {
		opts.ExcerptLen = DefaultExcerptLen
	}

	var pinnedID int64
	if opts.Item != nil {
		pinnedID = EffectivePin(f, opts.Item.PinnedCommentID)
	}

	top := WithPinnedFirst(f.top, pinnedID)
	p := projector{opts: opts, pinnedID: pinnedID}

	for _, n := range Paginate(top, opts.Page, opts.PageSize) {
		p.walk(n, nil, false)
	}

	return Projection{
		Nodes:         p.out,
		Page:          opts.Page,
		TotalPages:    PageCount(len(top), opts.PageSize),
		TotalTopLevel: len(top),
		PinnedID:      pinnedID,
		Focus:         focusOf(f, top, opts),
	}
}

type projector struct {
	opts     ProjectOptions
	pinnedID int64
	out      []DisplayNode
}

// walk выводит узел и его ответы в глубину. Ответы ранжируются в группе своего
// истинного родителя, поэтому сплющенная цепочка идёт за тем, на что она отвечает.
func (p *projector) walk(n *Node, rank *Rank, hidden bool) {
	replies := n.Replies()
	ranked := RankChildren(replies, p.opts.Rank)

	if hidden && !p.opts.IncludeHidden {
		return
	}

	dn := p.decorate(n)
	dn.Rank = rank
	dn.Hidden = hidden
	dn.HiddenRepliesCount = ranked.HiddenCount
	p.out = append(p.out, dn)

	total := len(replies)
	for i, child := range ranked.Visible {
		p.walk(child, &Rank{Position: i + 1, Total: total}, hidden)
	}
	for i, child := range ranked.Hidden {
		p.walk(child, &Rank{Position: len(ranked.Visible) + i + 1, Total: total}, true)
	}
}

func (p *projector) decorate(n *Node) DisplayNode {
	c := n.Comment
	viewer := p.opts.Viewer
	author, deleted := p.author(c)
	retracted := c.IsRetracted()

	body := c.Body
	switch {
	case deleted:
		body = DeletedAccountPlaceholder
	case retracted:
		body = RetractedPlaceholder
	}

	open := p.opts.Item == nil || p.opts.Item.CommentsOpen

	dn := DisplayNode{
		ID:              c.ID,
		ParentID:        c.ParentID,
		Depth:           n.Depth,
		Author:          author,
		Body:            body,
		CreatedAt:       c.CreatedAt,
		IsPinned:        p.pinnedID != 0 && c.ID == p.pinnedID,
		IsRetracted:     retracted,
		IsAuthorDeleted: deleted,
		VoteCount:       VoteCount(c),
		UserHasVoted:    HasVoted(c, viewer.UserID),
		CanReply:        open && !retracted,
		CanModerate:     !retracted && CanRetract(c, viewer),
		CanRestore:      retracted && CanRestore(c, viewer),
	}

	if n.ReplyTo != nil {
		dn.ReplyTo = p.replyTo(n.ReplyTo)
	}

	return dn
}

// author возвращает бейдж автора и признак удалённого аккаунта.
func (p *projector) author(c *models.Comment) (AuthorBadge, bool) {
	if c.AuthorID == 0 {
		name := c.AuthorName
		if name == "" {
			name = GuestName
		}
		return AuthorBadge{Name: name, Guest: true}, false
	}

	acc, ok := p.opts.Accounts[c.AuthorID]
	if ok && acc.Deleted() {
		return AuthorBadge{Name: DeletedUserName, Deleted: true}, true
	}

	badge := AuthorBadge{ID: c.AuthorID, Name: c.AuthorName}
	if ok {
		badge.Name = acc.DisplayName
		badge.AvatarURL = acc.AvatarURL
	}

	return badge, false
}

func (p *projector) replyTo(t *ReplyTarget) *ReplyToView {
	parent := t.Comment
	author, deleted := p.author(parent)

	excerpt := Excerpt(parent.Body, p.opts.ExcerptLen)
	switch {
	case deleted:
		excerpt = DeletedAccountPlaceholder
	case parent.IsRetracted():
		excerpt = RetractedPlaceholder
	}

	return &ReplyToView{CommentID: t.CommentID, AuthorName: author.Name, Excerpt: excerpt}
}

// focusOf вычисляет ранг комментария FocusID среди соседей (или среди верхнего уровня).
func focusOf(f *Forest, top []*Node, opts ProjectOptions) *Focus {
	if opts.FocusID == 0 {
		return nil
	}

	n, ok := f.Node(opts.FocusID)
	if !ok {
		return nil
	}

	if n.ReplyTo == nil {
		for i, t := range top {
			if t == n {
				return &Focus{CommentID: n.ID(), Rank: Rank{Position: i + 1, Total: len(top)}}
			}
		}
		return nil
	}

	parent, ok := f.Node(n.ReplyTo.CommentID)
	if !ok {
		return nil
	}

	rank, hidden, ok := RankChildren(parent.Replies(), opts.Rank).RankOf(n.ID())
	if !ok {
		return nil
	}

	return &Focus{CommentID: n.ID(), Rank: rank, Hidden: hidden}
}
