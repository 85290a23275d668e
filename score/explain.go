package score

import (
	"strings"

	"github.com/foundrly/matchcore/core"
)

// StrongThreshold is the sub-score above which a dimension is named in the
// generated explanation.
const StrongThreshold = 70

// Explain generates a one-line explanation naming only the dimensions that
// scored above the strong threshold. It never asserts anything the numbers
// don't back up; when nothing stands out it describes the overall band.
func Explain(ms core.MatchScore) string {
	var strengths []string
	for _, dim := range []struct {
		value  int
		phrase string
	}{
		{ms.Skills, "strong skill overlap"},
		{ms.Goals, "closely aligned goals"},
		{ms.Location, "same area"},
		{ms.Network, "shared connections"},
		{ms.Availability, "highly responsive"},
		{ms.Experience, "shared background"},
	} {
		if dim.value > StrongThreshold {
			strengths = append(strengths, dim.phrase)
		}
	}

	if len(strengths) > 0 {
		return "Good match: " + strings.Join(strengths, ", ") + "."
	}
	switch {
	case ms.Overall > StrongThreshold:
		return "Solid compatibility across the board."
	case ms.Overall >= neutralScore:
		return "Moderate compatibility."
	default:
		return "Limited compatibility."
	}
}
