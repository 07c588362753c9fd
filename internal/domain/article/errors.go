package article

import "errors"

var (
	// ErrArticleNotFound indicates the article does not exist
	ErrArticleNotFound = errors.New("article not found")

	// ErrVersionConflict indicates an optimistic locking conflict on the article row
	ErrVersionConflict = errors.New("version conflict: article was modified")

	// ErrArticleVersionNotFound indicates no version with the requested number exists
	ErrArticleVersionNotFound = errors.New("article version not found")

	// ErrVersionNumberTaken indicates a concurrent writer already stored the same version number
	ErrVersionNumberTaken = errors.New("article version number already exists")

	// ErrNoVersions indicates a persisted article without any version, which must never happen
	ErrNoVersions = errors.New("article has no versions")
)
