package repository

import (
	stderrors "errors"
	"strings"

	"gorm.io/gorm"

	"rewear/pkg/errors"
)

// mapGormError maps gorm.ErrRecordNotFound to errors.NotFound and wraps the rest as store errors.
func mapGormError(resource, message string, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound(resource, err)
	}
	return errors.Store(message, err)
}

// requireAffected reports NotFound when a write touched no rows.
func requireAffected(resource, message string, result *gorm.DB) error {
	if result.Error != nil {
		return errors.Store(message, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound(resource, nil)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern that treats the fragment literally. Match it against
// columns folded by entity.Product.FoldSearchFields: "search_text LIKE ? ESCAPE '\'".
func containsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
}
