package answer

import "sort"

// rank scores every candidate against the keyword list and orders them by
// descending relevance. Equal scores keep discovery order.
func rank(cands []Candidate, keywords []string) []Candidate {
	for i := range cands {
		cands[i].Score = Relevance(cands[i].Text, keywords)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	return cands
}
