package scope

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"adv-service/pkg/logger"
	"adv-service/pkg/utils"
)

// Querier is the statement surface the repository runs on. Both *sql.DB and
// *sql.Conn satisfy it, so operations execute on the request's dedicated
// connection when a scope is active and on the shared pool otherwise.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Scope pins one pooled connection to one in-flight request. It is opened
// before routing runs and must be closed exactly once when the request is
// done, on every exit path.
type Scope struct {
	conn *sql.Conn
}

// Open borrows a connection from the pool for the duration of one request.
func Open(ctx context.Context, db *sql.DB) (*Scope, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Scope{conn: conn}, nil
}

// Close returns the connection to the pool.
func (s *Scope) Close() error {
	return s.conn.Close()
}

// Querier exposes the scoped connection for statement execution.
func (s *Scope) Querier() Querier {
	return s.conn
}

type ctxKey struct{}

// With attaches the scope to the request context so it travels through the
// handler call chain the same way chi carries URL parameters.
func With(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the scope attached to ctx, if any.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Scope)
	return s, ok
}

// Middleware opens a scope before the routed handler runs and closes it in a
// defer, so success, validation failure, not-found and panicking paths all
// release the connection.
func Middleware(db *sql.DB, loggers *logger.Loggers) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := Open(r.Context(), db)
			if err != nil {
				loggers.ErrorLogger.Error("failed to open request scope", utils.Err(err))
				utils.RespondWithErrorJSON(w, http.StatusInternalServerError, "internal server error")
				return
			}
			defer func() {
				if err := s.Close(); err != nil {
					loggers.ErrorLogger.Error("failed to close request scope", utils.Err(err))
				}
			}()

			next.ServeHTTP(w, r.WithContext(With(r.Context(), s)))
		})
	}
}
