package binder

import (
	"fmt"
	"net/http"
)

// Path creates a path parameter binder using extractor, typically chi.URLParam.
//
// Only fields with a `path:"name"` tag are bound. Empty values leave the
// field untouched.
func Path(extractor func(r *http.Request, fieldName string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv, err := structValue(v, ErrFailedToParsePath)
		if err != nil {
			return err
		}
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() {
				continue
			}

			if _, tagged := fieldType.Tag.Lookup("path"); !tagged {
				continue
			}
			paramName, skip := parseFieldTag(fieldType, "path")
			if skip {
				continue
			}

			value := extractor(r, paramName)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}

		return nil
	}
}
