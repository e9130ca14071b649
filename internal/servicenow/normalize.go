package servicenow

import "fmt"

// displayValue collapses a raw Table API value to a scalar string. Reference
// fields arrive either as a bare display string or as a nested object with a
// display_value member, depending on instance configuration and query flags.
func displayValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		if dv, ok := v["display_value"].(string); ok {
			return dv
		}
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeRecord maps a raw record onto the declared field set. Every
// declared output key is present in the result, as an empty string when the
// source field is absent, so consumers never need existence checks.
func normalizeRecord(raw map[string]interface{}, fields FieldMap) map[string]string {
	record := make(map[string]string, len(fields))
	for _, field := range fields {
		record[field.Key] = displayValue(raw[field.Source])
	}
	return record
}
