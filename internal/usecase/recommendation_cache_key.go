package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func normalizeCacheValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// RecommendationCacheKey hashes the normalized query so arbitrary user text
// never lands in a redis key.
func RecommendationCacheKey(query string) string {
	sum := sha256.Sum256([]byte(normalizeCacheValue(query)))
	return "rank:query:" + hex.EncodeToString(sum[:])
}

func RecommendationLockKey(cacheKey string) string {
	if strings.HasPrefix(cacheKey, "rank:query:") {
		return "rank:lock:" + strings.TrimPrefix(cacheKey, "rank:query:")
	}
	return "rank:lock:" + cacheKey
}
