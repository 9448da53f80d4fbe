package thread

import (
	"time"

	"github.com/pribylovaa/go-news-discussions/internal/models"
)

// Общие хелперы тестов пакета thread.

const testItemID int64 = 100

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// cm — комментарий материала testItemID, созданный через minutes минут после baseTime.
func cm(id, parent int64, minutes int, voters ...int64) models.Comment {
	return models.Comment{
		ID:            id,
		ParentID:      parent,
		ContentItemID: testItemID,
		AuthorID:      id * 10,
		CreatedAt:     baseTime.Add(time.Duration(minutes) * time.Minute),
		Approval:      models.ApprovalApproved,
		Body:          "body",
		VoterIDs:      voters,
	}
}

func ids(nodes []*Node) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID())
	}
	return out
}

func displayIDs(nodes []DisplayNode) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func voters(n int) []int64 {
	out := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, int64(1000+i))
	}
	return out
}
