package model

// Bot strategy constants
const (
	BotStrategyMinimax = "minimax"
	BotStrategyRandom  = "random"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyMinimax:
		return "Minimax"
	case BotStrategyRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyMinimax, BotStrategyRandom}
}

// IsValidBotStrategy returns true if the name is a known strategy
func IsValidBotStrategy(strategy string) bool {
	for _, s := range ValidBotStrategies() {
		if s == strategy {
			return true
		}
	}
	return false
}
