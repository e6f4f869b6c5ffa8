package redis

import (
	"fmt"

	"github.com/mcoot/brainplay/internal/model"
)

// Key prefix used when the config does not set one
const defaultKeyPrefix = "brainplay"

// collectionKey returns the Redis key holding a whole collection
func collectionKey(prefix string, c model.Collection) string {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return fmt.Sprintf("%s:collection:%s", prefix, c)
}
