package repository

// CacheRepository stores string values by key. A miss and a broken backend
// both report ok == false.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
