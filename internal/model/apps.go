package model

import "strings"

// CommonApps are offered as name suggestions when adding a subscription.
var CommonApps = []string{
	"Netflix",
	"Spotify",
	"YouTube Premium",
	"Disney+ Hotstar",
	"iCloud",
	"ChatGPT Plus",
	"GrabUnlimited",
	"Midjourney",
}

const maxSuggestions = 6

// SuggestApps returns up to six common app names containing query, excluding
// an exact (case-insensitive) match. A blank query yields nothing.
func SuggestApps(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []string
	for _, app := range CommonApps {
		lower := strings.ToLower(app)
		if strings.Contains(lower, q) && lower != q {
			out = append(out, app)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}
