package rating

// Tier is a named difficulty band derived from a rating.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	TierExpert
)

// Tier boundaries (exclusive upper bounds). A rating sitting exactly
// on a boundary belongs to the higher tier: 1300 is Medium.
const (
	easyUpper   = 1300.0
	mediumUpper = 1500.0
	hardUpper   = 1700.0
)

// Representative difficulty ratings per tier, passed to the question
// generator and used as the fallback opponent rating when the LLM
// omits its own difficulty estimate.
var tierRatings = map[Tier]float64{
	TierEasy:   1100,
	TierMedium: 1400,
	TierHard:   1600,
	TierExpert: 1800,
}

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	case TierExpert:
		return "Expert"
	}
	return "Unknown"
}

// Rating returns the tier's representative difficulty rating.
func (t Tier) Rating() float64 {
	return tierRatings[t]
}

// Classify maps a rating to its difficulty tier and the tier's
// representative rating. Total over all real inputs.
func Classify(r float64) (Tier, float64) {
	var t Tier
	switch {
	case r < easyUpper:
		t = TierEasy
	case r < mediumUpper:
		t = TierMedium
	case r < hardUpper:
		t = TierHard
	default:
		t = TierExpert
	}
	return t, tierRatings[t]
}
