package corpus

import "errors"

// Sentinel errors, declared package-level so callers can compare with
// errors.Is. Mirrors the teacher's convention of one var block of
// ErrXxx values near the top of the package.
var (
	ErrOffsetTableMissing = errors.New("offset table file missing or unreadable")
	ErrDocMapMissing      = errors.New("doc-id map file missing or unreadable")
	ErrMalformedDocument  = errors.New("document missing content or url field")
	ErrMalformedPosting   = errors.New("posting line could not be parsed")
)
