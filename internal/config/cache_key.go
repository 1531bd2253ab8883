package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionRemainingKey returns the cache key for a session's remaining seconds
func (r *CacheKeyStruct) SessionRemainingKey(sessionID string) string {
	return fmt.Sprintf("session:%s:remaining", sessionID)
}

// SessionStateKey returns the cache key for a session's last known lifecycle state
func (r *CacheKeyStruct) SessionStateKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

// SettingKey returns the cache key for a named application setting
func (r *CacheKeyStruct) SettingKey(name string) string {
	return fmt.Sprintf("setting:%s", name)
}

var CacheKey = NewCacheKeyStruct()
