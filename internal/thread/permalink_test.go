package thread

import (
	"testing"

	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPermalink_Build(t *testing.T) {
	p := Permalink{}

	cases := []struct {
		name    string
		itemURL string
		page    int
		id      int64
		want    string
	}{
		{"first page", "https://example.com/posts/abc", 1, 7, "https://example.com/posts/abc/comments#comment-7"},
		{"trailing slash", "https://example.com/posts/abc/", 3, 7, "https://example.com/posts/abc/comments/page/3#comment-7"},
		{"doubled separators", "https://example.com//posts//abc//", 2, 9, "https://example.com/posts/abc/comments/page/2#comment-9"},
		{"duplicate segment", "https://example.com/posts/abc/comments/", 2, 1, "https://example.com/posts/abc/comments/page/2#comment-1"},
		{"query kept", "https://example.com/p?id=4", 1, 2, "https://example.com/p/comments?id=4#comment-2"},
		{"relative", "/forum/topic-1", 1, 5, "/forum/topic-1/comments#comment-5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, p.Build(tc.itemURL, tc.page, tc.id))
		})
	}

	custom := Permalink{CommentsSegment: "discussion", PageSegment: "p"}
	require.Equal(t, "https://example.com/a/discussion/p/2#comment-3", custom.Build("https://example.com/a", 2, 3))
	require.Equal(t, "https://example.com/a/discussion", custom.CommentsURL("https://example.com/a/"))
}

func TestPageArithmetic(t *testing.T) {
	require.Equal(t, 1, PageOf(1, 10))
	require.Equal(t, 1, PageOf(10, 10))
	require.Equal(t, 2, PageOf(11, 10))
	require.Equal(t, 1, PageOf(50, 0))

	require.Equal(t, 1, PageCount(0, 10))
	require.Equal(t, 1, PageCount(10, 10))
	require.Equal(t, 3, PageCount(21, 10))
	require.Equal(t, 1, PageCount(21, 0))
}

func TestPaginate(t *testing.T) {
	f := BuildTree([]models.Comment{cm(1, 0, 0), cm(2, 0, 1), cm(3, 0, 2), cm(4, 0, 3), cm(5, 0, 4)}, BuildOptions{MaxDepth: 3})
	top := f.TopLevel()

	require.Equal(t, []int64{1, 2}, ids(Paginate(top, 1, 2)))
	require.Equal(t, []int64{5}, ids(Paginate(top, 3, 2)))
	require.Empty(t, Paginate(top, 4, 2))
	require.Empty(t, Paginate(top, 0, 2))
	require.Len(t, Paginate(top, 1, 0), 5)
}

func TestWithPinnedFirst(t *testing.T) {
	f := BuildTree([]models.Comment{cm(1, 0, 0), cm(2, 0, 1), cm(3, 0, 2)}, BuildOptions{MaxDepth: 3})
	top := f.TopLevel()

	require.Equal(t, []int64{3, 1, 2}, ids(WithPinnedFirst(top, 3)))
	require.Equal(t, []int64{1, 2, 3}, ids(WithPinnedFirst(top, 0)))
	require.Equal(t, []int64{1, 2, 3}, ids(WithPinnedFirst(top, 42)))
	require.Equal(t, []int64{1, 2, 3}, ids(top))
}

// Round-trip: страница из ResolvePage совпадает со страницей, на которой Project
// фактически отрисует комментарий при отсутствии закрепления.
func TestResolvePage_RoundTrip(t *testing.T) {
	var in []models.Comment
	id := int64(1)
	for i := 0; i < 7; i++ {
		root := id
		in = append(in, cm(root, 0, i*10))
		id++
		in = append(in, cm(id, root, i*10+1))
		id++
		in = append(in, cm(id, id-1, i*10+2))
		id++
	}

	for _, order := range []models.SortOrder{models.OrderAsc, models.OrderDesc} {
		f := BuildTree(in, BuildOptions{MaxDepth: 2, Order: order})
		const pageSize = 3

		for _, c := range in {
			page, ok := ResolvePage(f, c.ID, pageSize)
			require.True(t, ok)

			proj := Project(f, ProjectOptions{Page: page, PageSize: pageSize, Rank: RankOptions{Window: 3}})
			require.Contains(t, displayIDs(proj.Nodes), c.ID, "order=%s id=%d page=%d", order, c.ID, page)
		}
	}

	f := BuildTree(in, BuildOptions{MaxDepth: 2})
	_, ok := ResolvePage(f, 999, 3)
	require.False(t, ok)
}

// Закрепление не влияет на номер страницы в ссылке.
func TestResolvePage_IgnoresPin(t *testing.T) {
	in := []models.Comment{cm(1, 0, 0), cm(2, 0, 1), cm(3, 0, 2), cm(4, 0, 3)}
	f := BuildTree(in, BuildOptions{MaxDepth: 3})

	page, ok := ResolvePage(f, 4, 2)
	require.True(t, ok)
	require.Equal(t, 2, page)

	item := &models.ContentItem{ID: testItemID, PinnedCommentID: 4, CommentsOpen: true}
	proj := Project(f, ProjectOptions{Item: item, Page: 1, PageSize: 2})
	require.Equal(t, int64(4), proj.Nodes[0].ID)

	page, _ = ResolvePage(f, 4, 2)
	require.Equal(t, 2, page)
}
