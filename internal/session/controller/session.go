package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/calyptra/storefront/internal/common"
	commonHttp "github.com/calyptra/storefront/internal/common/http"
	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
)

var tracer = otel.Tracer("session-service")

type SessionController struct {
	secretKey string
}

func AttachSessionController(mux *mux.Router, secretKey string) {
	controller := SessionController{secretKey: secretKey}
	mux.HandleFunc("/sessions", controller.CreateSession).Methods(http.MethodPost)
}

// CreateSession mints an anonymous cart-session token. The storefront
// stores it client side and presents it on cart and wishlist calls.
func (t SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	c, span := tracer.Start(r.Context(), "SessionController CreateSession")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionController CreateSession").
		Str(log.KeyProcess, "creating session").
		Logger()

	logger.Info().Msg("creating session")
	c = logger.WithContext(c)
	token, sessionId, err := common.CreateSessionToken(c, t.secretKey)
	if err != nil {
		err = fmt.Errorf("failed creating session with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("created sessionId=%s", sessionId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "session created",
		"data": map[string]interface{}{
			"sessionId": sessionId.String(),
			"token":     token,
		},
	})
}
