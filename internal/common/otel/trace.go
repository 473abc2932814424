package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/calyptra/storefront/internal/common/constants"
)

var Tracer = otel.Tracer(constants.AppStorefrontService)
