package shared

// Condition represents a status condition on a combat entity
type Condition string

const (
	ConditionStunned  Condition = "stunned"
	ConditionProne    Condition = "prone"
	ConditionGrappled Condition = "grappled"
	ConditionPoisoned Condition = "poisoned"

	// ConditionSemistunned is a one-shot opening: the next attack roll against
	// the entity has advantage, then the condition clears itself
	ConditionSemistunned Condition = "semistunned"
)
