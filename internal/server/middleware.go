package server

import (
	"github.com/acmelabs/backoffice/internal/actorctx"
	"github.com/acmelabs/backoffice/internal/obsctx"
	"github.com/gin-gonic/gin"
)

const contextUserIDKey = "user_id"

// AuthRequired resolves the session cookie and injects the acting user
// into the request context. Requests without a valid session never reach
// the handler.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := actorctx.WithActorID(c.Request.Context(), session.UserID)
		ctx = obsctx.WithActor(ctx, session.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Set(contextUserIDKey, session.UserID.String())
		c.Next()
	}
}
