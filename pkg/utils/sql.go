package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var sqlSpaceRegex = regexp.MustCompile(`\s+`)

// FormatSQL renders a parameterized query with its placeholders substituted
// for debug logging. PostgreSQL placeholders ($1, $2, ...) are replaced with
// SQL literals so the logged statement can be pasted into psql directly.
// Whitespace is flattened to keep log lines on one line.
func FormatSQL(query string, args ...interface{}) string {
	result := query
	for i, arg := range args {
		placeholder := fmt.Sprintf("$%d", i+1)
		var value string
		switch v := arg.(type) {
		case string:
			value = fmt.Sprintf("'%s'", strings.ReplaceAll(v, "'", "''"))
		case []string:
			quoted := make([]string, len(v))
			for j, s := range v {
				quoted[j] = fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "''"))
			}
			value = fmt.Sprintf("ARRAY[%s]", strings.Join(quoted, ", "))
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			value = fmt.Sprintf("%v", v)
		case float32, float64:
			value = fmt.Sprintf("%v", v)
		case bool:
			value = fmt.Sprintf("%t", v)
		case nil:
			value = "NULL"
		default:
			value = fmt.Sprintf("'%v'", v)
		}
		result = strings.Replace(result, placeholder, value, 1)
	}

	return strings.TrimSpace(sqlSpaceRegex.ReplaceAllString(result, " "))
}
