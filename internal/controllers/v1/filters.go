package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters applies the name, note and search filters that all
// list endpoints share.
//
// A set but empty parameter filters for resources where the field is
// empty, which is why setFields is needed in addition to the values.
func stringFilters(db, query *gorm.DB, setFields []string, nameField, name, note, search string) *gorm.DB {
	if name != "" {
		query = query.Where(fmt.Sprintf("%s LIKE ?", nameField), fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where(fmt.Sprintf("%s = ''", nameField))
	}

	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where(fmt.Sprintf("%s LIKE ?", nameField), fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}

// paginate slices a fully loaded result set the same way offset and
// limit do in the database. Used when a filter can only run in-memory.
func paginate[R any](resources []R, offset uint, limit int) []R {
	if int(offset) >= len(resources) {
		return []R{}
	}

	resources = resources[offset:]
	if limit >= 0 && limit < len(resources) {
		resources = resources[:limit]
	}

	return resources
}
