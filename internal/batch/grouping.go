// internal/batch/grouping.go
package batch

import (
	"sort"
	"strings"

	"github.com/law-makers/websearch/pkg/models"
)

// GroupByEngine groups request indexes by normalized engine name.
// The google alias shares the google group since both hit the same hosts.
func GroupByEngine(requests []models.SearchRequest) map[string][]int {
	groups := make(map[string][]int)

	for i, req := range requests {
		name := strings.ToLower(strings.TrimSpace(string(req.Engine)))
		if name == string(models.EngineGoogleSearch) {
			name = string(models.EngineGoogle)
		}
		groups[name] = append(groups[name], i)
	}

	return groups
}

// Interleave orders request indexes round-robin across engine groups so
// consecutive dispatches go to different hosts where possible.
func Interleave(requests []models.SearchRequest) []int {
	groups := GroupByEngine(requests)

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	order := make([]int, 0, len(requests))
	for round := 0; len(order) < len(requests); round++ {
		for _, name := range names {
			if round < len(groups[name]) {
				order = append(order, groups[name][round])
			}
		}
	}
	return order
}
