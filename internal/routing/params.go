package routing

import (
	"fmt"
	"reflect"
	"strconv"
)

// Identifier is implemented by models that address themselves in a route.
type Identifier interface {
	RouteID() string
}

// NormalizeParams turns a lone value or an ordered sequence into a flat
// sequence. A nil value yields an empty sequence.
func NormalizeParams(v any) []any {
	switch p := v.(type) {
	case nil:
		return nil
	case []any:
		return p
	case string, []byte:
		return []any{p}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}

	params := make([]any, rv.Len())
	for i := range params {
		params[i] = rv.Index(i).Interface()
	}
	return params
}

// paramString converts a single route param into its path representation.
func paramString(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", fmt.Errorf("%w: nil %T", ErrInvalidParam, v)
	}

	switch p := v.(type) {
	case string:
		return p, nil
	case []byte:
		return string(p), nil
	case Identifier:
		return p.RouteID(), nil
	case fmt.Stringer:
		return p.String(), nil
	case int:
		return strconv.Itoa(p), nil
	case int64:
		return strconv.FormatInt(p, 10), nil
	case uint64:
		return strconv.FormatUint(p, 10), nil
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(p), nil
	case map[string]any:
		return modelID(p)
	case map[any]any:
		converted := make(map[string]any, len(p))
		for k, val := range p {
			converted[fmt.Sprint(k)] = val
		}
		return modelID(converted)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Slice, reflect.Array:
		return "", fmt.Errorf("%w: nested sequence %v", ErrInvalidParam, v)
	}

	return "", fmt.Errorf("%w: %T", ErrInvalidParam, v)
}

// modelID extracts the id of a model object such as {id: 13}.
func modelID(m map[string]any) (string, error) {
	id, ok := m["id"]
	if !ok || id == nil {
		return "", fmt.Errorf("%w: model without id", ErrInvalidParam)
	}
	if _, nested := id.(map[string]any); nested {
		return "", fmt.Errorf("%w: model id is an object", ErrInvalidParam)
	}
	return paramString(id)
}
