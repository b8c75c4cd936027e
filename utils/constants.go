// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis dialogue session keys.
const SessionKeyPrefix = "chat:session:"

// MemoryKeyPrefix is the prefix used for Redis saved-memory keys.
const MemoryKeyPrefix = "chat:memory:"

// GuestTokenTTL is how long a guest auth token remains valid.
const GuestTokenTTL = 30 * 24 * time.Hour
