package cache

import "strings"

// GlobalKeyPrefix namespaces every key this application writes, so a shared
// Redis instance can be flushed selectively.
const GlobalKeyPrefix = "studyhelper"

// GenerateCacheKey builds a colon-separated key
// "<prefix>:<service>:<objectType>:<identifier>"; extra params are joined
// with "_" and appended as one trailing segment.
func GenerateCacheKey(serviceName, objectType, identifier string, params ...string) string {
	parts := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(params) > 0 {
		parts = append(parts, strings.Join(params, "_"))
	}
	return strings.Join(parts, ":")
}
