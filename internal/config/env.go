package config

const (
	EnvLogLevel        = "RIVIERA_LOG_LEVEL"
	EnvLogFormat       = "RIVIERA_LOG_FORMAT"
	EnvLogFile         = "RIVIERA_LOG_FILE"
	EnvEnvironment     = "RIVIERA_ENVIRONMENT"
	EnvEnvFile         = "RIVIERA_ENV_FILE"
	EnvTimezone        = "RIVIERA_TIMEZONE"
	EnvHotelID         = "RIVIERA_HOTEL_ID"
	EnvSeedDemo        = "RIVIERA_SEED_DEMO"
	EnvStayFrom        = "RIVIERA_STAY_FROM"
	EnvStayTo          = "RIVIERA_STAY_TO"
	EnvStayService     = "RIVIERA_STAY_SERVICE"
	EnvStayRoomType    = "RIVIERA_STAY_ROOM_TYPE"
	EnvStayGuests      = "RIVIERA_STAY_GUESTS"
	EnvShutdownTimeout = "RIVIERA_SHUTDOWN_TIMEOUT"
)
