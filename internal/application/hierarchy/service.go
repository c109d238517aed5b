// Package hierarchy manages the Module → SubModule → Permission tree.
package hierarchy

import (
	"fmt"

	"warden/internal/shared/errors"
)

// checkVersion rejects an update prepared against an older copy of the row.
// Zero means the caller did not pin a version.
func checkVersion(entity string, id uint, expected, stored int) error {
	if expected != 0 && expected != stored {
		return errors.NewWriteConflictError(
			fmt.Sprintf("%s was modified by another request", entity),
			fmt.Sprintf("id=%d expected_version=%d current_version=%d", id, expected, stored),
		)
	}
	return nil
}

func notFound(entity string, id uint) error {
	return errors.NewNotFoundError(fmt.Sprintf("%s not found", entity), fmt.Sprintf("id=%d", id))
}

func nameConflict(entity, name string) error {
	return errors.NewConflictError(fmt.Sprintf("%s name already exists", entity), name)
}
