package aggregator

// CollisionStrategy defines how to handle operations sharing one key
type CollisionStrategy string

const (
	// StrategyAcceptLeft keeps the operation that comes first in scan order
	StrategyAcceptLeft CollisionStrategy = "accept-left"
	// StrategyAcceptRight keeps the operation that comes last in scan order
	StrategyAcceptRight CollisionStrategy = "accept-right"
	// StrategyFailOnCollision reports the duplicate as an error
	StrategyFailOnCollision CollisionStrategy = "fail"
	// StrategyMerge merges the candidates into the first one
	StrategyMerge CollisionStrategy = "merge"
	// StrategyDeduplicateEquivalent collapses identical candidates and fails otherwise
	StrategyDeduplicateEquivalent CollisionStrategy = "deduplicate"
)

// DefaultStrategy is the strategy used when none is configured.
const DefaultStrategy = StrategyAcceptRight

// ValidStrategies returns all valid collision strategy strings
func ValidStrategies() []string {
	return []string{
		string(StrategyAcceptLeft),
		string(StrategyAcceptRight),
		string(StrategyFailOnCollision),
		string(StrategyMerge),
		string(StrategyDeduplicateEquivalent),
	}
}

// IsValidStrategy checks if a strategy string is valid
func IsValidStrategy(strategy string) bool {
	switch CollisionStrategy(strategy) {
	case StrategyAcceptLeft, StrategyAcceptRight, StrategyFailOnCollision, StrategyMerge,
		StrategyDeduplicateEquivalent:
		return true
	default:
		return false
	}
}
