package core

import (
	"sort"

	"teamlens/schema"
)

// Per-file expert ranking constants.
const topExpertsPerFile = 3

// buildFileExpertise derives per-file expertise from the full (pre-sampling)
// commit list: for each path, the authors who touched it most, ranked by
// their commit counts on that path, paired with the path's change frequency.
// Output is limited to the top `limit` files by change frequency.
func buildFileExpertise(commits []schema.GitCommit, experts []schema.Expert, limit int) []schema.FileExpertise {
	nameByEmail := make(map[string]string, len(experts))
	for _, e := range experts {
		nameByEmail[e.Email] = e.Name
	}

	type authorCount struct {
		name  string
		count int
	}
	changes := make(map[string]int)
	authors := make(map[string]map[string]*authorCount)

	for _, c := range commits {
		for _, f := range c.Files {
			changes[f]++
			if authors[f] == nil {
				authors[f] = make(map[string]*authorCount)
			}
			if ac, ok := authors[f][c.Email]; ok {
				ac.count++
			} else {
				name := c.Author
				if n, ok := nameByEmail[c.Email]; ok {
					name = n
				}
				authors[f][c.Email] = &authorCount{name: name, count: 1}
			}
		}
	}

	paths := make([]string, 0, len(changes))
	for p := range changes {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if changes[paths[i]] != changes[paths[j]] {
			return changes[paths[i]] > changes[paths[j]]
		}
		return paths[i] < paths[j]
	})
	if len(paths) > limit {
		paths = paths[:limit]
	}

	result := make([]schema.FileExpertise, 0, len(paths))
	for _, p := range paths {
		counts := make([]authorCount, 0, len(authors[p]))
		for _, ac := range authors[p] {
			counts = append(counts, *ac)
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].count != counts[j].count {
				return counts[i].count > counts[j].count
			}
			return counts[i].name < counts[j].name
		})
		if len(counts) > topExpertsPerFile {
			counts = counts[:topExpertsPerFile]
		}
		names := make([]string, len(counts))
		for i, ac := range counts {
			names[i] = ac.name
		}
		result = append(result, schema.FileExpertise{
			Path:            p,
			TopExperts:      names,
			ChangeFrequency: changes[p],
		})
	}
	return result
}
