package imaging

const ellipsis = "..."

// fitText returns text unchanged when it measures within maxWidth, otherwise
// truncates it rune by rune and appends an ellipsis so that the result still
// fits. Widths come from the actual font metrics via measure, never from
// character counts.
func fitText(measure func(string) float64, text string, maxWidth float64) string {
	if measure(text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if measure(string(runes)+ellipsis) <= maxWidth {
			return string(runes) + ellipsis
		}
	}

	// Nothing fits; the bare ellipsis is the best we can do.
	return ellipsis
}
