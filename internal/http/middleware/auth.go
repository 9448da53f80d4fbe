package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/go-news-discussions/internal/http/apierrors"
	logctx "github.com/pribylovaa/go-news-discussions/pkg/log"
)

var errInvalidToken = errors.New("invalid token")

// AuthOptions — параметры проверки access-токенов auth-service.
type AuthOptions struct {
	Secret   []byte
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// accessClaims — формат access-токена auth-service: uid — id учётной записи.
type accessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Authenticate проверяет Bearer-токен (HS256) и кладёт id пользователя в контекст.
//   - нет заголовка Authorization — запрос идёт дальше как гостевой;
//   - заголовок есть, но это не Bearer или токен невалиден — 401;
//   - request-scoped логгер получает атрибут user_id.
func Authenticate(opts AuthOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			uid, err := parseAccessToken(strings.TrimSpace(auth[len(prefix):]), opts)
			if err != nil {
				logctx.From(r.Context()).Warn("access_token_rejected", "err", err.Error())
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			ctx := WithUserID(r.Context(), uid)
			ctx = logctx.With(ctx, "user_id", uid)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser отклоняет гостевые запросы с 401.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFrom(r.Context()) == 0 {
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseAccessToken(tokenStr string, opts AuthOptions) (int64, error) {
	const op = "middleware.auth.parseAccessToken"

	if tokenStr == "" {
		return 0, fmt.Errorf("%s: %w", op, errInvalidToken)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(opts.Leeway),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, errInvalidToken)
			}

			return opts.Secret, nil
		},
		parserOpts...,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("%s: %w", op, errInvalidToken)
	}

	raw := claims.UserID
	if raw == "" {
		raw = claims.Subject
	}

	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || uid <= 0 {
		return 0, fmt.Errorf("%s: %w", op, errInvalidToken)
	}

	return uid, nil
}
