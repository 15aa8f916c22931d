package common

import "time"

// CacheInterface abstracts the cache backend so services can run against
// Redis in production and the in-memory cache in development and tests.
type CacheInterface interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)
	Close() error
}
