package match

import (
	"fmt"
	"strconv"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// matchReasons emits human-readable per-criterion explanations. Criteria
// scoring at least 0.8 get a strong wording, those in (0, 0.8) a softer one,
// zero scores produce nothing.
func (e *Engine) matchReasons(req *models.Requirement, property *models.Property) []string {
	reasons := []string{}

	if req.Location != nil && property.Location != "" {
		switch score := scoreLocation(req.Location.Area, property.Location); {
		case score >= 0.8:
			reasons = append(reasons, fmt.Sprintf("Excellent location match: %s", property.Location))
		case score > 0:
			reasons = append(reasons, fmt.Sprintf("Good location proximity: %s", property.Location))
		}
	}

	if req.Budget != nil && property.Price > 0 {
		switch score := scoreBudget(req.Budget.Amount, property.Price); {
		case score >= 0.8:
			reasons = append(reasons, fmt.Sprintf("Within budget: %s EGP", formatAmount(property.Price)))
		case score > 0:
			reasons = append(reasons, fmt.Sprintf("Near budget range: %s EGP", formatAmount(property.Price)))
		}
	}

	if req.PropertyType != nil && property.Type != "" {
		switch score := scoreType(req.PropertyType.Type, property.Type); {
		case score >= 0.8:
			reasons = append(reasons, fmt.Sprintf("Matching property type: %s", property.Type))
		case score > 0:
			reasons = append(reasons, fmt.Sprintf("Similar property type: %s", property.Type))
		}
	}

	if req.Size != nil && property.SizeSqm > 0 {
		switch score := scoreSize(req.Size.AreaSqm, property.SizeSqm); {
		case score >= 0.8:
			reasons = append(reasons, fmt.Sprintf("Size fits requirement: %.0f sqm", property.SizeSqm))
		case score > 0:
			reasons = append(reasons, fmt.Sprintf("Size close to requirement: %.0f sqm", property.SizeSqm))
		}
	}

	if req.Bedrooms != nil && property.Bedrooms > 0 {
		switch score := scoreBedrooms(*req.Bedrooms, property.Bedrooms); {
		case score >= 0.8:
			reasons = append(reasons, "Perfect bedroom count")
		case score > 0:
			reasons = append(reasons, "Close bedroom count match")
		}
	}

	return reasons
}

// formatAmount renders an EGP amount with thousands separators.
func formatAmount(amount float64) string {
	raw := strconv.FormatFloat(amount, 'f', 0, 64)

	negative := false
	if len(raw) > 0 && raw[0] == '-' {
		negative = true
		raw = raw[1:]
	}

	var out []byte
	for i, digit := range []byte(raw) {
		if i > 0 && (len(raw)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
