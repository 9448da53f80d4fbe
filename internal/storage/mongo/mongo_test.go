package mongo

// Интеграционные тесты адаптера MongoDB.
//
// Запуск (нужен Docker):
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/mongo -v -count=1
//
// Контейнер поднимается один раз на пакет в режиме replica set (нужен для транзакций),
// каждый тест работает в своей БД с уникальным именем.

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-discussions/internal/config"
	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/storage"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoC, err := tcmongo.Run(ctx, "mongo:7.0", tcmongo.WithReplicaSet("rs0"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	uri, err := mongoC.ConnectionString(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
		os.Exit(1)
	}
	_ = os.Setenv("DATABASE_URL", uri)

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewMongo подключается к отдельной тестовой БД и регистрирует очистку.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	cfg := &config.Config{DB: config.DBConfig{
		URL:      os.Getenv("DATABASE_URL"),
		Database: "discussions_test_" + uuid.NewString()[:8],
	}}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func seed(t *testing.T, m *Mongo, item models.ContentItem, comments ...models.Comment) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := m.items.InsertOne(ctx, item)
	require.NoError(t, err)

	docs := make([]any, 0, len(comments))
	for _, c := range comments {
		docs = append(docs, c)
	}
	if len(docs) > 0 {
		_, err = m.comments.InsertMany(ctx, docs)
		require.NoError(t, err)
	}
}

var t0 = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func comment(id, parent int64, approval models.ApprovalState, minutes int) models.Comment {
	return models.Comment{
		ID:            id,
		ParentID:      parent,
		ContentItemID: 1,
		AuthorID:      id * 10,
		CreatedAt:     t0.Add(time.Duration(minutes) * time.Minute),
		Approval:      approval,
		Body:          fmt.Sprintf("comment %d", id),
		VoterIDs:      []int64{},
	}
}

func TestApprovedComments_FiltersAndOrders(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	seed(t, m, models.ContentItem{ID: 1, CommentsOpen: true},
		comment(3, 0, models.ApprovalApproved, 3),
		comment(1, 0, models.ApprovalApproved, 1),
		comment(2, 1, models.ApprovalPending, 2),
		comment(4, 1, models.ApprovalSpam, 4),
		comment(5, 1, models.ApprovalApproved, 5),
	)

	got, err := m.ApprovedComments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int64{1, 3, 5}, []int64{got[0].ID, got[1].ID, got[2].ID})
	require.Equal(t, int64(1), got[2].ParentID)

	empty, err := m.ApprovedComments(ctx, 42)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestCommentAndItemLookups(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	seed(t, m, models.ContentItem{ID: 1, AuthorID: 7, Kind: models.KindForum, URL: "https://x/p/1", PinnedCommentID: 1},
		comment(1, 0, models.ApprovalApproved, 0))

	c, err := m.CommentByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "comment 1", c.Body)

	_, err = m.CommentByID(ctx, 99)
	require.ErrorIs(t, err, storage.ErrNotFound)

	mark, err := m.RetractionMark(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, mark)

	item, err := m.ContentItem(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, models.KindForum, item.Kind)

	pinned, err := m.PinnedCommentID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), pinned)

	_, err = m.ContentItem(ctx, 2)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestToggleVote(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	retracted := comment(2, 0, models.ApprovalApproved, 1)
	retracted.Retraction = &models.RetractionMark{RetractedAt: t0}
	noVoters := comment(3, 0, models.ApprovalApproved, 2)
	noVoters.VoterIDs = nil

	seed(t, m, models.ContentItem{ID: 1}, comment(1, 0, models.ApprovalApproved, 0), retracted, noVoters)

	voted, n, err := m.ToggleVote(ctx, 1, 50)
	require.NoError(t, err)
	require.True(t, voted)
	require.Equal(t, 1, n)

	voted, n, err = m.ToggleVote(ctx, 1, 50)
	require.NoError(t, err)
	require.False(t, voted)
	require.Zero(t, n)

	voted, n, err = m.ToggleVote(ctx, 3, 50)
	require.NoError(t, err)
	require.True(t, voted)
	require.Equal(t, 1, n)

	_, _, err = m.ToggleVote(ctx, 2, 50)
	require.ErrorIs(t, err, storage.ErrInvalidTarget)

	_, _, err = m.ToggleVote(ctx, 99, 50)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Конкурентные переключения разных пользователей не теряют голосов.
func TestToggleVote_Concurrent(t *testing.T) {
	m := mustNewMongo(t)
	seed(t, m, models.ContentItem{ID: 1}, comment(1, 0, models.ApprovalApproved, 0))

	const users = 20
	var wg sync.WaitGroup
	for i := 1; i <= users; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, _, err := m.ToggleVote(context.Background(), 1, uid)
			require.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	c, err := m.CommentByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, c.VoterIDs, users)
}

// Отзыв закреплённого комментария снимает закрепление в той же транзакции.
func TestRetract_ClearsPin(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	seed(t, m, models.ContentItem{ID: 1, PinnedCommentID: 1},
		comment(1, 0, models.ApprovalApproved, 0),
		comment(2, 0, models.ApprovalApproved, 1),
	)

	mark := models.RetractionMark{RetractedAt: t0.Add(time.Hour), RetractedBy: 10}
	changed, cleared, err := m.Retract(ctx, 1, mark)
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, cleared)

	pinned, err := m.PinnedCommentID(ctx, 1)
	require.NoError(t, err)
	require.Zero(t, pinned)

	got, err := m.RetractionMark(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, mark.RetractedBy, got.RetractedBy)
	require.True(t, mark.RetractedAt.Equal(got.RetractedAt))

	// Повторный отзыв — no-op.
	changed, cleared, err = m.Retract(ctx, 1, mark)
	require.NoError(t, err)
	require.False(t, changed)
	require.False(t, cleared)

	// Незакреплённый комментарий: закрепление не трогается.
	require.NoError(t, m.SetPinnedComment(ctx, 1, 2))
	_, cleared, err = m.Retract(ctx, 1, mark)
	require.NoError(t, err)
	require.False(t, cleared)

	_, _, err = m.Retract(ctx, 99, mark)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestore(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	c := comment(1, 0, models.ApprovalApproved, 0)
	c.Retraction = &models.RetractionMark{RetractedAt: t0, RetractedBy: 10}
	seed(t, m, models.ContentItem{ID: 1}, c)

	changed, err := m.Restore(ctx, 1)
	require.NoError(t, err)
	require.True(t, changed)

	mark, err := m.RetractionMark(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, mark)

	changed, err = m.Restore(ctx, 1)
	require.NoError(t, err)
	require.False(t, changed)

	_, err = m.Restore(ctx, 99)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSetPinnedComment_Targets(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	retracted := comment(3, 0, models.ApprovalApproved, 2)
	retracted.Retraction = &models.RetractionMark{RetractedAt: t0}

	seed(t, m, models.ContentItem{ID: 1},
		comment(1, 0, models.ApprovalApproved, 0),
		comment(2, 1, models.ApprovalApproved, 1),
		retracted,
		comment(4, 0, models.ApprovalPending, 3),
	)

	require.NoError(t, m.SetPinnedComment(ctx, 1, 1))
	pinned, err := m.PinnedCommentID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), pinned)

	for _, id := range []int64{2, 3, 4} {
		require.ErrorIs(t, m.SetPinnedComment(ctx, 1, id), storage.ErrInvalidTarget, "comment %d", id)
	}
	require.ErrorIs(t, m.SetPinnedComment(ctx, 1, 99), storage.ErrNotFound)
	require.ErrorIs(t, m.SetPinnedComment(ctx, 2, 0), storage.ErrNotFound)

	require.NoError(t, m.SetPinnedComment(ctx, 1, 0))
	pinned, err = m.PinnedCommentID(ctx, 1)
	require.NoError(t, err)
	require.Zero(t, pinned)
}
