package model

// Rule identifies which placement rule a candidate violated
type Rule string

const (
	RuleNone                 Rule = ""
	RuleOutOfBounds          Rule = "out_of_bounds"
	RuleOverlap              Rule = "overlap"
	RuleFirstPlacementCorner Rule = "first_placement_corner"
	RuleCornerContact        Rule = "corner_contact"
	RuleEdgeContact          Rule = "edge_contact"
)

// ValidationResult is the outcome of checking one candidate placement.
// Conflicts lists the candidate cells responsible for the violation, if any.
type ValidationResult struct {
	Valid     bool       `json:"valid"`
	Violation Rule       `json:"violation,omitempty"`
	Conflicts []Position `json:"conflicts,omitempty"`
}

// Accepted returns a passing result
func Accepted() ValidationResult {
	return ValidationResult{Valid: true}
}

// Rejected returns a failing result for rule with the given conflicting cells
func Rejected(rule Rule, conflicts ...Position) ValidationResult {
	return ValidationResult{Valid: false, Violation: rule, Conflicts: conflicts}
}

// RuleDescription returns a human-readable explanation of a rule violation
func RuleDescription(rule Rule) string {
	switch rule {
	case RuleOutOfBounds:
		return "piece extends beyond the board"
	case RuleOverlap:
		return "piece overlaps an occupied cell"
	case RuleFirstPlacementCorner:
		return "first piece must cover the player's starting corner"
	case RuleCornerContact:
		return "piece must touch a corner of one of the player's pieces"
	case RuleEdgeContact:
		return "piece may not share an edge with the player's own pieces"
	default:
		return string(rule)
	}
}
