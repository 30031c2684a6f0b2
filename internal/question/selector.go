package question

// ExclusionPolicy controls which previously served question ids are excluded
// when picking the next quiz question.
type ExclusionPolicy int

const (
	// ExcludeLast excludes only the most recently served id. This reproduces
	// the historical contract of the service and is the default, even though
	// it allows earlier questions in the session to repeat.
	ExcludeLast ExclusionPolicy = iota

	// ExcludeAll excludes every previously served id.
	ExcludeAll
)

// Exclusions returns the question ids to filter out of the candidate set for
// the given list of previously served ids, oldest first.
func (p ExclusionPolicy) Exclusions(previous []int) []int {
	if len(previous) == 0 {
		return nil
	}
	switch p {
	case ExcludeAll:
		seen := make(map[int]struct{}, len(previous))
		out := make([]int, 0, len(previous))
		for _, id := range previous {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return out
	default:
		return []int{previous[len(previous)-1]}
	}
}
