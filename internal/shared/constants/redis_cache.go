package constants

import "fmt"

// Redis keys
// Pattern: coachseat:{module}:{identifier}:{params?}

const KeyPrefix = "coachseat"

// BuildRateLimitKey returns the sliding-window key for one client and route class
func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s:ratelimit:%s:%s", KeyPrefix, clientIP, limitType)
}
