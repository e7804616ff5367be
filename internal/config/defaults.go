package config

import "time"

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogMaxMB  = 10

	DefaultEnvironment = "development"
	DefaultEnvFile     = ".env"
	DefaultTimezone    = "America/Argentina/Buenos_Aires"

	DefaultHotelID  = "riviera"
	DefaultSeedDemo = true

	DefaultStayFrom     = "2025-10-05"
	DefaultStayTo       = "2025-10-15"
	DefaultStayService  = "breakfast"
	DefaultStayRoomType = "double"
	DefaultStayGuests   = 2

	DefaultShutdownTimeout = 4 * time.Second
)
