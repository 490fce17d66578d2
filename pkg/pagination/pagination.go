package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 100
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 500
)

// Page is one slice of an ordered listing. Total is the unfiltered row
// count, independent of how much Limit truncated Items.
type Page[T any] struct {
	Items  []T
	Total  int64
	Offset int
	Limit  int
}

// NextOffset returns the offset a client should pass to fetch the following
// page: offset + min(limit, len(items)). Paging forward until
// NextOffset >= Total walks every row exactly once.
func (p Page[T]) NextOffset() int {
	step := len(p.Items)
	if p.Limit < step {
		step = p.Limit
	}
	return p.Offset + step
}

// HasMore reports whether another page exists past this one.
func (p Page[T]) HasMore() bool {
	return int64(p.NextOffset()) < p.Total
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeOffset clamps negative offsets to zero.
func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
