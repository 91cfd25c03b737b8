package scoring

import "strconv"

// Band is the qualitative tier derived from the numeric score.
type Band string

const (
	BandAdvanced Band = "advanced"
	BandSolid    Band = "solid"
	BandBasic    Band = "basic"
	BandUrgent   Band = "urgent"
)

// Band thresholds, inclusive at the lower edge.
const (
	advancedThreshold = 85
	solidThreshold    = 65
	basicThreshold    = 35
)

// Score sums the numeric value of every selected option. Option values double
// as their weights, so the total is simply the sum of the answer values.
// Validation guarantees the values parse; anything else is skipped.
func Score(answers map[string]string) int {
	total := 0
	for _, value := range answers {
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		total += n
	}
	return total
}

// BandFor maps a numeric score onto its band, evaluating thresholds in
// descending order.
func BandFor(score int) Band {
	switch {
	case score >= advancedThreshold:
		return BandAdvanced
	case score >= solidThreshold:
		return BandSolid
	case score >= basicThreshold:
		return BandBasic
	default:
		return BandUrgent
	}
}

func (b Band) String() string {
	return string(b)
}
