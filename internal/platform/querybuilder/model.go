package querybuilder

import (
	"errors"
	"reflect"
	"strings"
	"sync"
)

var (
	errNilModel     = errors.New("querybuilder: nil model")
	errNotStruct    = errors.New("querybuilder: model is not a struct")
	errNoDBColumns  = errors.New("querybuilder: model has no db columns")
	modelFieldCache sync.Map // reflect.Type -> []modelField
)

type modelField struct {
	column string
	index  []int
}

// InsertModel builds an INSERT from the `db` tags of a struct. Fields tagged
// with the omitempty option are left out when they hold their zero value so
// the column default applies.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v, err := structValue(model)
	if err != nil {
		return "", nil, err
	}

	fields := fieldsOf(v.Type())
	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, f := range fields {
		fv := v.FieldByIndex(f.index)
		if f.omitZero() && fv.IsZero() {
			continue
		}
		cols = append(cols, f.name())
		vals = append(vals, fv.Interface())
	}
	if len(cols) == 0 {
		return "", nil, errNoDBColumns
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

func structValue(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, errNilModel
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errNotStruct
	}
	return v, nil
}

func fieldsOf(t reflect.Type) []modelField {
	if cached, ok := modelFieldCache.Load(t); ok {
		return cached.([]modelField)
	}
	fields := collectFields(t, nil)
	modelFieldCache.Store(t, fields)
	return fields
}

// collectFields walks exported fields in declaration order. Untagged exported
// embedded structs are flattened into their parent.
func collectFields(t reflect.Type, parent []int) []modelField {
	var out []modelField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), parent...), i)
		tag, tagged := sf.Tag.Lookup("db")
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && !tagged && sf.Type.Kind() == reflect.Struct {
			out = append(out, collectFields(sf.Type, index)...)
			continue
		}
		tag = strings.TrimSpace(tag)
		if tag == "" || strings.HasPrefix(tag, "-") {
			continue
		}
		out = append(out, modelField{column: tag, index: index})
	}
	return out
}

func (f modelField) name() string {
	name, _, _ := strings.Cut(f.column, ",")
	return strings.TrimSpace(name)
}

func (f modelField) omitZero() bool {
	_, opts, _ := strings.Cut(f.column, ",")
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == "omitempty" {
			return true
		}
	}
	return false
}
