package rules

const (
	// BirthScore is the only score at which a dead cell comes alive
	BirthScore = 3
	// MinSurvivalScore and MaxSurvivalScore bound the scores a living cell survives
	MinSurvivalScore = 3
	MaxSurvivalScore = 5
)

/*
Score combines the neighbor counts of a cell's own layer and its two adjacent layers.

The layer behind feeds the cell (symbionts), the layer before it feeds on the cell (parasites):

	score = own + symbionts - parasites

The result may be negative or exceed 8.
*/
func Score(own, symbionts, parasites int) int {
	return own + symbionts - parasites
}

/*
ApplyRGBRules applies the RGB Life rules to determine the next state of a cell.

RGB Life rules: (!alive && score == 3) || (alive && 3 <= score <= 5)
*/
func ApplyRGBRules(score int, alive bool) bool {
	if alive {
		return score >= MinSurvivalScore && score <= MaxSurvivalScore
	}
	return score == BirthScore
}
