package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/calyptra/storefront/internal/common/errors"
	commonHttp "github.com/calyptra/storefront/internal/common/http"
	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
	"github.com/calyptra/storefront/internal/product/otel"
	"github.com/calyptra/storefront/internal/product/service"
	"github.com/calyptra/storefront/product/pkg/request"
)

type ProductController struct {
	service *service.ProductService
}

func AttachProductController(mux *mux.Router, service *service.ProductService) {
	controller := ProductController{service: service}

	router := mux.PathPrefix("/products").Subrouter()
	router.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)
	router.HandleFunc("/{productId}/resolve", controller.ResolveVariant).
		Methods(http.MethodPost)
}

func (t ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating productId").Logger()
	logger.Info().Msg("validating productId")
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Info().Msgf("validated productId=%s", productId.String())

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	product, err := t.service.FindProductById(c, productId)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productId.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found product")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("productId=%s found", productId.String()),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t ProductController) ResolveVariant(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController ResolveVariant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController ResolveVariant").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating productId").Logger()
	logger.Info().Msg("validating productId")
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Info().Msgf("validated productId=%s", productId.String())

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.ResolveVariant{}
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
		Str(log.KeyProcess, "resolving selection").
		Strs(log.KeySelection, reqBody.Options).
		Logger()
	logger.Info().Msg("resolving selection")
	c = logger.WithContext(c)
	resolved, err := t.service.ResolveSelection(c, productId, reqBody.Options, reqBody.Quantity)
	if err != nil {
		err = fmt.Errorf(
			"failed resolving selection for productId=%s with error=%w",
			productId.String(),
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrVariantNotFound) ||
			errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("resolved variantId=%s", resolved.Variant.ID.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "variant resolved",
		"data": map[string]interface{}{
			"resolved": resolved,
		},
	})
}
