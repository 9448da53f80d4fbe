package dto

import (
	"github.com/pribylovaa/go-news-discussions/internal/service"
	"github.com/pribylovaa/go-news-discussions/internal/thread"
)

func ThreadPageFromService(p *service.ThreadPage) ThreadPageResponse {
	if p == nil {
		return ThreadPageResponse{Comments: []Comment{}}
	}

	out := ThreadPageResponse{
		ItemID:        p.ItemID,
		Page:          p.Page,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages,
		TotalTopLevel: p.TotalTopLevel,
		PinnedID:      p.PinnedID,
		CommentsOpen:  p.CommentsOpen,
		CommentsURL:   p.CommentsURL,
		Comments:      make([]Comment, 0, len(p.Nodes)),
	}

	if p.Focus != nil {
		out.Focus = &Focus{
			CommentID: p.Focus.CommentID,
			Rank:      rankFrom(p.Focus.Rank),
			Hidden:    p.Focus.Hidden,
		}
	}

	for _, n := range p.Nodes {
		out.Comments = append(out.Comments, commentFrom(n))
	}

	return out
}

func commentFrom(n thread.DisplayNode) Comment {
	c := Comment{
		ID:       n.ID,
		ParentID: n.ParentID,
		Depth:    n.Depth,
		Author: Author{
			ID:        n.Author.ID,
			Name:      n.Author.Name,
			AvatarURL: n.Author.AvatarURL,
			IsGuest:   n.Author.Guest,
			IsDeleted: n.Author.Deleted,
		},
		Body:               n.Body,
		CreatedAt:          n.CreatedAt.UTC().Unix(),
		IsPinned:           n.IsPinned,
		IsRetracted:        n.IsRetracted,
		IsAuthorDeleted:    n.IsAuthorDeleted,
		VoteCount:          n.VoteCount,
		UserHasVoted:       n.UserHasVoted,
		CanReply:           n.CanReply,
		CanModerate:        n.CanModerate,
		CanRestore:         n.CanRestore,
		HiddenRepliesCount: n.HiddenRepliesCount,
		Hidden:             n.Hidden,
	}

	if n.ReplyTo != nil {
		c.ReplyTo = &ReplyTo{
			CommentID:  n.ReplyTo.CommentID,
			AuthorName: n.ReplyTo.AuthorName,
			Excerpt:    n.ReplyTo.Excerpt,
		}
	}
	if n.Rank != nil {
		r := rankFrom(*n.Rank)
		c.Rank = &r
	}

	return c
}

func rankFrom(r thread.Rank) Rank {
	return Rank{Position: r.Position, Total: r.Total}
}

func PermalinkFromService(l *service.CommentLink) PermalinkResponse {
	if l == nil {
		return PermalinkResponse{}
	}

	return PermalinkResponse{
		CommentID: l.CommentID,
		ItemID:    l.ItemID,
		Page:      l.Page,
		URL:       l.URL,
	}
}

func VoteFromService(v *service.VoteResult) VoteResponse {
	if v == nil {
		return VoteResponse{}
	}

	return VoteResponse{CommentID: v.CommentID, Voted: v.Voted, VoteCount: v.VoteCount}
}

func RollupFromService(r *service.RollupResult) RollupResponse {
	if r == nil {
		return RollupResponse{}
	}

	return RollupResponse{CommentID: r.CommentID, RootID: r.RootID, Total: r.Total, Cached: r.Cached}
}

func TopThreadsFromService(itemID int64, ts []service.ThreadSummary) TopThreadsResponse {
	out := TopThreadsResponse{ItemID: itemID, Threads: make([]ThreadSummary, 0, len(ts))}
	for _, t := range ts {
		out.Threads = append(out.Threads, ThreadSummary{
			RootID:      t.RootID,
			AuthorID:    t.AuthorID,
			CreatedAt:   t.CreatedAt.UTC().Unix(),
			IsRetracted: t.IsRetracted,
			Rollup:      t.Rollup,
			Replies:     t.Replies,
		})
	}

	return out
}

func RetractFromService(r *service.RetractResult) RetractResponse {
	if r == nil {
		return RetractResponse{}
	}

	return RetractResponse{CommentID: r.CommentID, Changed: r.Changed, PinCleared: r.PinCleared}
}

func RestoreFromService(r *service.RestoreResult) RestoreResponse {
	if r == nil {
		return RestoreResponse{}
	}

	return RestoreResponse{CommentID: r.CommentID, Changed: r.Changed}
}
