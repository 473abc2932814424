package constants

const (
	AppMainStorefront    = "storefront"
	AppStorefrontService = "storefront-service"
	AppCatalogSeeder     = "catalog-seeder"
	AudienceStorefront   = "storefront"
	LogFilePath          = "/var/log/storefront.log"
	DefaultCatalogPath   = "./seed/catalog.seed.json"
)
