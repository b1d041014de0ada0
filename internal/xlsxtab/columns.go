// Handles column schema derivation from the record type.

package xlsxtab

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// columnType represents the type of a spreadsheet column.
type columnType string

const (
	columnTypeText   columnType = "text"
	columnTypeNumber columnType = "number"
	columnTypeDate   columnType = "date"
)

// Column describes one spreadsheet column.
type Column struct {
	Name        string
	Type        columnType
	Description string
}

// columnsFromType extracts column definitions using JSON Schema reflection.
//
// It uses github.com/invopop/jsonschema to walk the struct fields in
// declaration order, so the derived columns match the persisted header
// order. Integer fields become number columns and string fields tagged
// `jsonschema:"format=date"` become date columns; everything else is text.
func columnsFromType[T any]() ([]Column, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type must be a struct or pointer to struct, got %s", t.Kind())
	}

	// Generate JSON Schema from type with inline properties (no $ref).
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	schema := r.ReflectFromType(t)

	var columns []Column
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		prop := pair.Value

		colType := columnTypeText
		switch {
		case prop.Type == "integer" || prop.Type == "number":
			colType = columnTypeNumber
		case prop.Type == "string" && prop.Format == "date":
			colType = columnTypeDate
		}

		columns = append(columns, Column{
			Name:        pair.Key,
			Type:        colType,
			Description: prop.Description,
		})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("type %s has no exported fields", t.Name())
	}
	return columns, nil
}
