package domain

// ValidateOrdinal rejects negative ordinals.
func ValidateOrdinal(ordinal int) error {
	if ordinal < 0 {
		return Validationf("order must be a non-negative integer, got %d", ordinal)
	}
	return nil
}
