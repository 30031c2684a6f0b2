package question

// Paginate returns the 1-based page of size pageSize from items, clipping to
// the slice bounds. An out-of-range page yields an empty slice, never an error.
func Paginate(page, pageSize int, items []Question) []Question {
	if page < 1 || pageSize <= 0 {
		return []Question{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []Question{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
