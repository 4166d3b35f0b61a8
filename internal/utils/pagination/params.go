package pagination

const (
	// DefaultLimit applies when the caller does not specify a page size.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Normalize clamps page/limit query parameters to sane values. Pages are
// 1-based.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset converts 1-based page/limit into a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
