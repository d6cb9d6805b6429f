package feed

// compareEpisodes orders dated episodes newest first. When either side has
// no date the left operand is reported as greater, so the relation is not
// symmetric and the outcome depends on the sort algorithm below.
func compareEpisodes(a, b Episode) int {
	if a.Published != nil && b.Published != nil {
		return b.Published.Compare(*a.Published)
	}
	return 1
}

// SortEpisodes sorts in place with a stable insertion sort: each element
// moves left only while it compares strictly less than its predecessor.
func SortEpisodes(eps []Episode) {
	for i := 1; i < len(eps); i++ {
		for j := i; j > 0 && compareEpisodes(eps[j], eps[j-1]) < 0; j-- {
			eps[j], eps[j-1] = eps[j-1], eps[j]
		}
	}
}
