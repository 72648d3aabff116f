package scheduling

import "fmt"

// RequiredInterval resolves a medical category to the required number of
// days between visits. An unknown category is a deployment bug, not a
// user error, and fails with ErrConfiguration.
func RequiredInterval(category MedicalCategory) (int, error) {
	days, ok := categoryIntervalDays[category]
	if !ok {
		return 0, fmt.Errorf("%w: unknown medical category %q", ErrConfiguration, category)
	}
	return days, nil
}

// CategoryWeight returns the priority weight for a category.
// Unknown categories fail with ErrConfiguration like RequiredInterval.
func CategoryWeight(category MedicalCategory) (float64, error) {
	weight, ok := categoryWeights[category]
	if !ok {
		return 0, fmt.Errorf("%w: unknown medical category %q", ErrConfiguration, category)
	}
	return weight, nil
}
