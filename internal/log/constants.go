package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyToken              = "token"
	KeySessionID          = "sessionId"
	KeyProductID          = "productId"
	KeyVariantID          = "variantId"
	KeyLineKey            = "lineKey"
	KeyQuantity           = "quantity"
	KeySequence           = "sequence"
	KeySelection          = "selection"
	KeyCart               = "cart"
	KeyItemCount          = "itemCount"
	KeyListName           = "listName"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyDbURL              = "dbURL"
)
