package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-news-discussions/internal/http/dto"
	"github.com/pribylovaa/go-news-discussions/internal/http/middleware"
	"github.com/pribylovaa/go-news-discussions/internal/metrics"
	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/service"
	"github.com/pribylovaa/go-news-discussions/internal/thread"
)

// fakeDiscussions запоминает аргументы вызовов и отдаёт заранее заданный результат.
type fakeDiscussions struct {
	err error

	render    service.RenderInput
	page      *service.ThreadPage
	voteUser  int64
	pinArgs   [3]int64
	actorSeen int64
}

func (f *fakeDiscussions) RenderThreadPage(_ context.Context, in service.RenderInput) (*service.ThreadPage, error) {
	f.render = in
	return f.page, f.err
}

func (f *fakeDiscussions) ResolveCommentPermalink(_ context.Context, id int64) (*service.CommentLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.CommentLink{CommentID: id, ItemID: 100, Page: 2, URL: fmt.Sprintf("https://news.example/p/comments/page/2#comment-%d", id)}, nil
}

func (f *fakeDiscussions) ToggleVote(_ context.Context, commentID, userID int64) (*service.VoteResult, error) {
	f.voteUser = userID
	if f.err != nil {
		return nil, f.err
	}
	return &service.VoteResult{CommentID: commentID, Voted: true, VoteCount: 3}, nil
}

func (f *fakeDiscussions) ThreadRollup(_ context.Context, id int64) (*service.RollupResult, error) {
	return &service.RollupResult{CommentID: id, RootID: 1, Total: 9}, f.err
}

func (f *fakeDiscussions) TopThreads(_ context.Context, _ int64, _ int) ([]service.ThreadSummary, error) {
	return []service.ThreadSummary{{RootID: 1, Rollup: 9, Replies: 2, CreatedAt: time.Unix(1700000000, 0)}}, f.err
}

func (f *fakeDiscussions) RetractComment(_ context.Context, id, actorID int64) (*service.RetractResult, error) {
	f.actorSeen = actorID
	if f.err != nil {
		return nil, f.err
	}
	return &service.RetractResult{CommentID: id, Changed: true, PinCleared: true}, nil
}

func (f *fakeDiscussions) RestoreComment(_ context.Context, id, actorID int64) (*service.RestoreResult, error) {
	f.actorSeen = actorID
	if f.err != nil {
		return nil, f.err
	}
	return &service.RestoreResult{CommentID: id, Changed: true}, nil
}

func (f *fakeDiscussions) SetPinnedComment(_ context.Context, itemID, commentID, actorID int64) error {
	f.pinArgs = [3]int64{itemID, commentID, actorID}
	return f.err
}

var testAuth = middleware.AuthOptions{
	Secret:   []byte("router-secret"),
	Issuer:   "auth-service",
	Audience: "news-aggregator",
	Leeway:   time.Second,
}

func bearer(t *testing.T, uid int64) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uid": fmt.Sprint(uid),
		"iss": testAuth.Issuer,
		"aud": testAuth.Audience,
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testAuth.Secret)
	require.NoError(t, err)

	return "Bearer " + tok
}

func newTestRouter(f *fakeDiscussions, m *metrics.Metrics) http.Handler {
	return NewRouter(f, Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout: time.Second,
		Auth:    testAuth,
		Metrics: m,
	})
}

func do(h http.Handler, method, target, body, authz string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, rd)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var env struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NotEmpty(t, env.Error.RequestID)
	return env.Error.Code
}

func TestRenderThreadPage_QueryAndJSON(t *testing.T) {
	f := &fakeDiscussions{page: &service.ThreadPage{
		Projection: thread.Projection{
			Nodes: []thread.DisplayNode{
				{ID: 1, Depth: 1, Author: thread.AuthorBadge{ID: 10, Name: "ann"}, Body: "hi", IsPinned: true, HiddenRepliesCount: 2},
				{ID: 2, ParentID: 1, Depth: 2, Rank: &thread.Rank{Position: 1, Total: 3},
					ReplyTo: &thread.ReplyToView{CommentID: 1, AuthorName: "ann", Excerpt: "hi"}},
			},
			Page:          2,
			TotalPages:    3,
			TotalTopLevel: 5,
			PinnedID:      1,
		},
		ItemID:      100,
		CommentsURL: "https://news.example/p/comments",
	}}
	m := metrics.New(prometheus.NewRegistry())
	h := newTestRouter(f, m)

	rr := do(h, http.MethodGet, "/items/100/comments?page=2&order=desc&expand=true&focus=2", "", bearer(t, 7))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, service.RenderInput{
		ItemID:        100,
		Page:          2,
		Order:         models.OrderDesc,
		ViewerID:      7,
		IncludeHidden: true,
		FocusID:       2,
	}, f.render)

	var got dto.ThreadPageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Comments, 2)
	require.True(t, got.Comments[0].IsPinned)
	require.Equal(t, 2, got.Comments[0].HiddenRepliesCount)
	require.Equal(t, &dto.Rank{Position: 1, Total: 3}, got.Comments[1].Rank)
	require.Contains(t, rr.Body.String(), `"hidden_replies_count":2`)
	require.Contains(t, rr.Body.String(), `"reply_to":{"comment_id":1`)

	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/items/{item_id}/comments", http.MethodGet, "200")))
}

func TestRenderThreadPage_BadInput(t *testing.T) {
	h := newTestRouter(&fakeDiscussions{}, nil)

	for _, target := range []string{
		"/items/abc/comments",
		"/items/0/comments",
		"/items/100/comments?page=-1",
		"/items/100/comments?order=sideways",
		"/items/100/comments?expand=maybe",
	} {
		rr := do(h, http.MethodGet, target, "", "")
		require.Equal(t, http.StatusBadRequest, rr.Code, target)
		require.Equal(t, "invalid_argument", errorCode(t, rr), target)
	}
}

func TestMutations_RequireToken(t *testing.T) {
	f := &fakeDiscussions{}
	h := newTestRouter(f, nil)

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/comments/5/vote", ""},
		{http.MethodPost, "/comments/5/retract", ""},
		{http.MethodPost, "/comments/5/restore", ""},
		{http.MethodPut, "/items/100/pin", `{"comment_id":5}`},
	} {
		rr := do(h, tc.method, tc.target, tc.body, "")
		require.Equal(t, http.StatusUnauthorized, rr.Code, tc.target)
		require.Equal(t, "unauthenticated", errorCode(t, rr))
	}
}

func TestToggleVote_PassesUserAndMapsErrors(t *testing.T) {
	f := &fakeDiscussions{}
	h := newTestRouter(f, nil)

	rr := do(h, http.MethodPost, "/comments/5/vote", "", bearer(t, 42))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, int64(42), f.voteUser)
	require.JSONEq(t, `{"comment_id":5,"voted":true,"vote_count":3}`, rr.Body.String())

	cases := map[error]int{
		service.ErrInvalidTarget:   http.StatusConflict,
		service.ErrUnauthorized:    http.StatusForbidden,
		service.ErrNotFound:        http.StatusNotFound,
		service.ErrInternal:        http.StatusInternalServerError,
		context.DeadlineExceeded:   http.StatusGatewayTimeout,
		service.ErrInvalidArgument: http.StatusBadRequest,
	}
	for err, status := range cases {
		f.err = fmt.Errorf("service/votes/ToggleVote: %w", err)
		rr := do(h, http.MethodPost, "/comments/5/vote", "", bearer(t, 42))
		require.Equal(t, status, rr.Code, err.Error())
	}
}

func TestModeration_Endpoints(t *testing.T) {
	f := &fakeDiscussions{}
	h := newTestRouter(f, nil)

	rr := do(h, http.MethodPost, "/comments/3/retract", "", bearer(t, 9))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, int64(9), f.actorSeen)
	require.JSONEq(t, `{"comment_id":3,"changed":true,"pin_cleared":true}`, rr.Body.String())

	rr = do(h, http.MethodPost, "/comments/3/restore", "", bearer(t, 8))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, int64(8), f.actorSeen)

	rr = do(h, http.MethodPut, "/items/100/pin", `{"comment_id":3}`, bearer(t, 1))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, [3]int64{100, 3, 1}, f.pinArgs)

	rr = do(h, http.MethodPut, "/items/100/pin", `{"comment_id":null}`, bearer(t, 1))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, [3]int64{100, 0, 1}, f.pinArgs)
	require.JSONEq(t, `{"item_id":100,"comment_id":0}`, rr.Body.String())

	for _, body := range []string{`{"comment_id":3,"extra":1}`, `{"comment_id":-3}`, `not json`, `{"comment_id":3}{}`} {
		rr = do(h, http.MethodPut, "/items/100/pin", body, bearer(t, 1))
		require.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestReadEndpoints(t *testing.T) {
	h := newTestRouter(&fakeDiscussions{}, nil)

	rr := do(h, http.MethodGet, "/comments/7/permalink", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"comment_id":7,"item_id":100,"page":2,"url":"https://news.example/p/comments/page/2#comment-7"}`, rr.Body.String())

	rr = do(h, http.MethodGet, "/comments/7/rollup", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"comment_id":7,"root_id":1,"total":9,"cached":false}`, rr.Body.String())

	rr = do(h, http.MethodGet, "/items/100/threads/top?limit=5", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"item_id":100,"threads":[{"root_id":1,"author_id":0,"created_at":1700000000,"is_retracted":false,"rollup":9,"replies":2}]}`, rr.Body.String())

	rr = do(h, http.MethodGet, "/items/100/threads/top?limit=x", "", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
