package config

const EnvPrefix = "DISPATCH"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, kept as constants so tests and deploy tooling
// reference a single source of truth.
const (
	EnvAppEnv         = "DISPATCH_APP_ENV"
	EnvLogLevel       = "DISPATCH_LOG_LEVEL"
	EnvLogWarnStack   = "DISPATCH_LOG_WARN_STACK"
	EnvDeviceName     = "DISPATCH_DEVICE_NAME"
	EnvTerminalDwell  = "DISPATCH_SCANNER_TERMINAL_DWELL"
	EnvMediaMaxWidth  = "DISPATCH_MEDIA_MAX_WIDTH_PX"
	EnvJPEGQuality    = "DISPATCH_MEDIA_JPEG_QUALITY"
	EnvGeoPlaceholder = "DISPATCH_GEO_PLACEHOLDER"
	EnvSeedPath       = "DISPATCH_SEED_PATH"
)
