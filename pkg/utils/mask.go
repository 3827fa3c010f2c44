package utils

// MaskString hides roughly the second half of a value so identifiers can be
// logged without exposing them fully.
func MaskString(input string) string {
	if len(input) <= 4 {
		return "****"
	}

	visible := len(input) / 2
	masked := []byte(input)
	for i := visible; i < len(masked); i++ {
		masked[i] = '*'
	}

	return string(masked)
}
