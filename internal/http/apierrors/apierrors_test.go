package apierrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/go-news-discussions/internal/service"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_Mapping(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("service/op: %w", err) }

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{nil, http.StatusInternalServerError, "internal"},
		{wrap(service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{ErrBadRequest, http.StatusBadRequest, "invalid_argument"},
		{ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{wrap(service.ErrUnauthorized), http.StatusForbidden, "permission_denied"},
		{wrap(service.ErrNotFound), http.StatusNotFound, "not_found"},
		{wrap(service.ErrInvalidTarget), http.StatusConflict, "invalid_target"},
		{fmt.Errorf("op: %w: %w", service.ErrInternal, context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{context.Canceled, StatusClientClosedRequest, "canceled"},
		{wrap(service.ErrInternal), http.StatusInternalServerError, "internal"},
		{errors.New("mongo: socket closed"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		status, resp := ToHTTP(tc.err)
		require.Equal(t, tc.status, status, "err=%v", tc.err)
		require.Equal(t, tc.code, resp.Error.Code, "err=%v", tc.err)
		require.NotEmpty(t, resp.Error.Message)
	}
}

func TestWriteError_AddsRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/comments/1/permalink", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := httptest.NewRecorder()

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "not_found", env.Error.Code)
	require.Equal(t, "rid-1", env.Error.RequestID)
}
