package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key for a live quiz session
func (r *CacheKeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("quiz:session:%s", sessionID)
}

// StartLimitKey returns the cache key counting session starts from one client
func (r *CacheKeyStruct) StartLimitKey(clientIP string) string {
	return fmt.Sprintf("quiz:start_limit:%s", clientIP)
}

var CacheKey = NewCacheKeyStruct()
