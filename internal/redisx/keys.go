package redisx

import "time"

const (
	// Settings cart expiration: hash stock_reserve:settings
	KeySettings = "stock_reserve:settings"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLDedup = 48 * time.Hour
)
