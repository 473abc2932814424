package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonHttp "github.com/calyptra/storefront/internal/common/http"
	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
	"github.com/calyptra/storefront/internal/wishlist/otel"
	"github.com/calyptra/storefront/internal/wishlist/service"
)

type WishlistController struct {
	service *service.WishlistService
}

func AttachWishlistController(mux *mux.Router, service *service.WishlistService) {
	controller := WishlistController{service: service}

	for _, listName := range []string{"wishlist", "compare"} {
		router := mux.PathPrefix("/" + listName).Subrouter()
		router.HandleFunc("", controller.List(listName)).Methods(http.MethodGet)
		router.HandleFunc("", controller.Replace(listName)).Methods(http.MethodPut)
		router.HandleFunc("/{productId}", controller.Toggle(listName)).
			Methods(http.MethodPost)
	}
}

func (t WishlistController) List(listName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "WishlistController List")
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "WishlistController List").
			Str(log.KeyListName, listName).
			Logger()
		sessionID := log.SessionIDFromContext(c)

		logger = logger.With().Str(log.KeyProcess, "listing ids").Logger()
		logger.Info().Msg("listing ids")
		c = logger.WithContext(c)
		ids, err := t.service.List(c, sessionID, listName)
		if err != nil {
			err = fmt.Errorf("failed listing %s with error=%w", listName, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusInternalServerError,
				"message":    err.Error(),
			})
			return
		}
		logger.Info().Msgf("listed %d ids", len(ids))

		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    fmt.Sprintf("%s listed", listName),
			"data": map[string]interface{}{
				"ids": ids,
			},
		})
	}
}

func (t WishlistController) Replace(listName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "WishlistController Replace")
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "WishlistController Replace").
			Str(log.KeyListName, listName).
			Logger()
		sessionID := log.SessionIDFromContext(c)

		logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
		logger.Info().Msg("decoding requestbody")
		reqBody := struct {
			IDs []string `json:"ids"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			err = fmt.Errorf("failed decoding request body with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusBadRequest,
				"message":    err.Error(),
			})
			return
		}
		logger.Info().Msg("decoded request body")

		logger = logger.With().Str(log.KeyProcess, "replacing list").Logger()
		logger.Info().Msg("replacing list")
		c = logger.WithContext(c)
		ids, err := t.service.Replace(c, sessionID, listName, reqBody.IDs)
		if err != nil {
			err = fmt.Errorf("failed replacing %s with error=%w", listName, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusInternalServerError,
				"message":    err.Error(),
			})
			return
		}
		logger.Info().Msg("replaced list")

		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    fmt.Sprintf("%s replaced", listName),
			"data": map[string]interface{}{
				"ids": ids,
			},
		})
	}
}

func (t WishlistController) Toggle(listName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "WishlistController Toggle")
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "WishlistController Toggle").
			Str(log.KeyListName, listName).
			Logger()
		sessionID := log.SessionIDFromContext(c)

		productId := mux.Vars(r)["productId"]
		logger = logger.With().
			Str(log.KeyProductID, productId).
			Str(log.KeyProcess, "toggling id").
			Logger()
		logger.Info().Msg("toggling id")
		c = logger.WithContext(c)
		ids, err := t.service.Toggle(c, sessionID, listName, productId)
		if err != nil {
			err = fmt.Errorf("failed toggling id=%s in %s with error=%w", productId, listName, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			statusCode := http.StatusInternalServerError
			if errors.Is(err, service.ErrUnknownList) {
				statusCode = http.StatusNotFound
			}
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": statusCode,
				"message":    err.Error(),
			})
			return
		}
		logger.Info().Msg("toggled id")

		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    fmt.Sprintf("%s toggled", productId),
			"data": map[string]interface{}{
				"ids": ids,
			},
		})
	}
}
