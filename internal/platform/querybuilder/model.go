package querybuilder

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// ColumnsOf lists the db-tagged columns of a scan model, each prefixed with
// the given table alias, so the select list always matches the struct sqlx
// scans into.
func ColumnsOf(model any, alias string) ([]string, error) {
	typ := reflect.TypeOf(model)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, errors.New("model must be struct")
	}

	prefix := ""
	if alias = strings.TrimSpace(alias); alias != "" {
		prefix = alias + "."
	}

	cols := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, prefix+col)
	}

	if len(cols) == 0 {
		return nil, errors.New("model has no db columns")
	}
	return cols, nil
}

// MustColumnsOf is ColumnsOf for package-level column lists.
func MustColumnsOf(model any, alias string) []string {
	cols, err := ColumnsOf(model, alias)
	if err != nil {
		panic(err)
	}
	return cols
}
