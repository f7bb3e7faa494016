package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/songbook-dev/songbook/internal/auth"
	"github.com/songbook-dev/songbook/internal/types"
)

type AuthenticatedUser struct {
	ID string `json:"id"`
}

// RequireSession rejects requests without a valid "Authorization: Bearer"
// session token. On success the caller is stored under types.ContextUserKey.
func RequireSession(codec *auth.TokenCodec) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx.GetHeader("Authorization"))

		if !ok {
			abortUnauthorized(ctx)
			return
		}

		claims, err := codec.Validate(tokenString)

		if err != nil {
			abortUnauthorized(ctx)
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{ID: claims.UserID})
		ctx.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)

	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])

	return token, token != ""
}

func abortUnauthorized(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewErrorResponse(types.MessageUnauthorized))
}
