package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Param is one query-string entry; order of Params is preserved on the wire
type Param struct {
	Key   string
	Value interface{}
}

// P is shorthand for Param{key, value}
func P(key string, value interface{}) Param {
	return Param{Key: key, Value: value}
}

// BuildQuery renders params as "?k=v&..." dropping nil and empty-string values.
// It returns "" when nothing survives.
func BuildQuery(params ...Param) string {
	var parts []string
	for _, p := range params {
		value, ok := formatValue(p.Value)
		if !ok {
			continue
		}
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(value))
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

func formatValue(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return formatValue(rv.Elem().Interface())
	}

	switch val := v.(type) {
	case string:
		return val, val != ""
	case bool:
		return strconv.FormatBool(val), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case time.Time:
		if val.IsZero() {
			return "", false
		}
		return val.Format("2006-01-02"), true
	case fmt.Stringer:
		s := val.String()
		return s, s != ""
	}

	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s, s != ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	}
	return fmt.Sprint(v), true
}
