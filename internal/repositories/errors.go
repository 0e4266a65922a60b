package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by every repository. Callers branch on these with
// errors.Is instead of inspecting driver errors.
var (
	// ErrNotFound means the requested id does not exist in the store.
	ErrNotFound = errors.New("record not found")
	// ErrIntegrityViolation means the operation was rejected because the row
	// is still referenced elsewhere.
	ErrIntegrityViolation = errors.New("integrity violation")
	// ErrDuplicateKey means a unique constraint rejected the write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// translateError maps GORM's translated driver errors onto the repository
// sentinels. Anything unrecognized passes through unchanged.
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrIntegrityViolation
	}
	return err
}

// orderClause builds a safe ORDER BY expression: the sort field must be in
// the repository's column whitelist and the direction is normalized to
// asc/desc. Unknown fields fall back to the provided default column.
func orderClause(allowed map[string]bool, sort, direction, fallback string) string {
	if !allowed[sort] {
		sort = fallback
	}
	if direction != "desc" && direction != "DESC" {
		direction = "asc"
	} else {
		direction = "desc"
	}
	return sort + " " + direction
}
