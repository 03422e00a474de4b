package redis

import (
	"fmt"

	"github.com/mcoot/connectfour/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "c4game"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}
