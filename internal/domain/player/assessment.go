package player

import "fmt"

// AssessValue renders the narrative shown next to a projection. The text is
// keyed off the tier and quotes the projected cost per goal above replacement.
func AssessValue(tier ValueTier, valuePerGAR *float64) string {
	cost := "n/a"
	if valuePerGAR != nil {
		cost = fmt.Sprintf("$%.2fM", *valuePerGAR)
	}

	switch tier {
	case TierBargain:
		return fmt.Sprintf("Projected to deliver surplus value: at %s per GAR this contract costs well below comparable production.", cost)
	case TierFairDeal:
		return fmt.Sprintf("Priced in line with expected impact: %s per GAR sits within the market range for similar players.", cost)
	case TierOverpay:
		return fmt.Sprintf("Projected cost outpaces expected contribution: %s per GAR is above the market rate for similar players.", cost)
	default:
		return fmt.Sprintf("Value not yet classified: projected cost is %s per GAR.", cost)
	}
}
