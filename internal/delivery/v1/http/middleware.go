package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// SessionHeader передаёт идентификатор сессии в обе стороны.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// SessionMiddleware привязывает к запросу сессию из заголовка X-Session-ID.
// Для запроса без заголовка или с неизвестной сессией открывается новая анонимная сессия.
func SessionMiddleware(sessions usecase.SessionProvider, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var session *usecase.Session
			if id := r.Header.Get(SessionHeader); id != "" {
				s, err := sessions.Get(ctx, id)
				switch {
				case err == nil:
					session = s
				case errors.Is(err, e.ErrSessionNotFound):
					logger.Debugf("Unknown session, opening a new one, session_id: %s", id)
				default:
					logger.Warnf("Failed to restore session, session_id: %s: %v", id, err)
				}
			}

			if session == nil {
				session = sessions.Open(ctx)
			}
			defer sessions.Release(session)

			w.Header().Set(SessionHeader, session.ID)
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, session)))
		})
	}
}

// SessionFromCtx возвращает сессию, привязанную SessionMiddleware.
func SessionFromCtx(ctx context.Context) *usecase.Session {
	s, _ := ctx.Value(sessionKey{}).(*usecase.Session)
	return s
}
