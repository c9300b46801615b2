package models

import "strings"

// Exercise is one catalog entry. Entries are owned by no identity.
// ID is a stable slug derived from the dataset name; Name is display-only.
type Exercise struct {
	ID               string
	Name             string
	Category         string
	Equipment        []string
	PrimaryMuscles   []string
	SecondaryMuscles []string
	Instructions     []string
	Images           []string
}

// SlugID derives the canonical exercise identifier from a display name:
// lowercased, runs of non-alphanumerics collapsed to single hyphens.
// "Bench Press" and "bench  press" map to the same id across reseeds.
func SlugID(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
