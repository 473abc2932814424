package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/calyptra/storefront/internal/common"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
	inHttp "github.com/calyptra/storefront/internal/common/http"
	"github.com/calyptra/storefront/internal/log"
)

// Session verifies the cart-session token and attaches the session id
// to the request context. Cart and wishlist routes require it.
func Session(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Session").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			token := strings.TrimPrefix(authorization, "Bearer ")
			sessionId, err := common.VerifySessionToken(c, token, secretKey)
			if err != nil {
				logger.Error().
					Err(inErrors.ErrTokenInvalid).
					Msg(inErrors.ErrTokenInvalid.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			logger = logger.With().Str(log.KeySessionID, sessionId.String()).Logger()
			c = log.AttachSessionIDToContext(c, sessionId.String())
			c = logger.WithContext(c)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
