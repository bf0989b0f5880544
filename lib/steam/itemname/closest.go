package itemname

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

type Match struct {
	Name  string
	Score float64
}

// Closest ranks `names` by their Jaro-Winkler similarity to `query` and returns
// at most `limit` of them (all of them if limit <= 0), best first.
func Closest(query string, names []string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))

	matches := make([]Match, len(names))
	for i, name := range names {
		matches[i] = Match{
			Name:  name,
			Score: matchr.JaroWinkler(query, strings.ToLower(name), false),
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
