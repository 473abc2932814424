package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/calyptra/storefront/internal/cart/otel"
	"github.com/calyptra/storefront/internal/cart/service"
	"github.com/calyptra/storefront/cart/pkg/request"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
	commonHttp "github.com/calyptra/storefront/internal/common/http"
	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	router := mux.PathPrefix("/carts").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("/lines", controller.AddLine).Methods(http.MethodPost)
	router.HandleFunc("/lines/{lineKey}", controller.ChangeQuantity).Methods(http.MethodPatch)
	router.HandleFunc("/lines/{lineKey}", controller.RemoveLine).Methods(http.MethodDelete)
	router.HandleFunc("/bulk", controller.BulkUpdate).Methods(http.MethodPost)
}

func mutationStatusCode(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrCartMutationFailed):
		return http.StatusBadGateway
	case errors.Is(err, inErrors.ErrMalformedCart):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Logger()
	sessionID := log.SessionIDFromContext(c)

	logger = logger.With().Str(log.KeyProcess, "refreshing cart").Logger()
	logger.Info().Msg("refreshing cart")
	c = logger.WithContext(c)
	snapshot, err := t.service.Refresh(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed refreshing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": mutationStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("refreshed cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart refreshed",
		"data": map[string]interface{}{
			"cart": snapshot,
		},
	})
}

func (t CartController) AddLine(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddLine").
		Logger()
	sessionID := log.SessionIDFromContext(c)

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddLine{}
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

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "adding line").
		Str(log.KeyVariantID, reqBody.VariantID).
		Logger()
	logger.Info().Msg("adding line")
	c = logger.WithContext(c)
	snapshot, err := t.service.AddLine(c, sessionID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding line with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": mutationStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("added line")

	// openDrawer tells the storefront UI to reveal the cart drawer,
	// mirroring the add-to-cart flow of the theme this fronts.
	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "line added",
		"data": map[string]interface{}{
			"cart":       snapshot,
			"openDrawer": true,
		},
	})
}

func (t CartController) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ChangeQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ChangeQuantity").
		Logger()
	sessionID := log.SessionIDFromContext(c)

	lineKey := mux.Vars(r)["lineKey"]
	logger = logger.With().Str(log.KeyLineKey, lineKey).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.ChangeQuantity{}
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

	logger = logger.With().
		Str(log.KeyProcess, "changing quantity").
		Int64(log.KeyQuantity, reqBody.Quantity).
		Logger()
	logger.Info().Msg("changing quantity")
	c = logger.WithContext(c)
	snapshot, err := t.service.ChangeQuantity(c, sessionID, lineKey, reqBody.Quantity)
	if err != nil {
		err = fmt.Errorf("failed changing quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": mutationStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("changed quantity")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("lineKey=%s updated", lineKey),
		"data": map[string]interface{}{
			"cart": snapshot,
		},
	})
}

func (t CartController) RemoveLine(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveLine").
		Logger()
	sessionID := log.SessionIDFromContext(c)

	lineKey := mux.Vars(r)["lineKey"]
	logger = logger.With().
		Str(log.KeyLineKey, lineKey).
		Str(log.KeyProcess, "removing line").
		Logger()
	logger.Info().Msg("removing line")
	c = logger.WithContext(c)
	snapshot, err := t.service.RemoveLine(c, sessionID, lineKey)
	if err != nil {
		err = fmt.Errorf("failed removing lineKey=%s with error=%w", lineKey, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": mutationStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("removed line")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("lineKey=%s removed", lineKey),
		"data": map[string]interface{}{
			"cart": snapshot,
		},
	})
}

func (t CartController) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController BulkUpdate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController BulkUpdate").
		Logger()
	sessionID := log.SessionIDFromContext(c)

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.BulkUpdate{}
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

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "bulk updating").Logger()
	logger.Info().Msg("bulk updating")
	c = logger.WithContext(c)
	snapshot, err := t.service.BulkUpdate(c, sessionID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed bulk updating with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": mutationStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("bulk updated")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart updated",
		"data": map[string]interface{}{
			"cart": snapshot,
		},
	})
}
