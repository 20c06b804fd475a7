package utils

// NormalizePage converts a limit/page pair into a bounded limit and
// offset. Zero or negative values fall back to the defaults.
func NormalizePage(limit, page, defaultLimit, maxLimit int32) (finalLimit, offset int32) {
	finalLimit = defaultLimit
	finalPage := int32(1)

	if limit > 0 {
		finalLimit = limit
	}
	if finalLimit > maxLimit {
		finalLimit = maxLimit
	}
	if page > 0 {
		finalPage = page
	}
	return finalLimit, (finalPage - 1) * finalLimit
}
