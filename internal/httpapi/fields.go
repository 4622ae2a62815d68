package httpapi

import "time"

// Builders for the partial field maps the stores consume. A nil pointer
// means the caller omitted the field, so nothing is set and the column
// keeps its database default or current value.

func putString(f map[string]any, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

func putBool(f map[string]any, key string, v *bool) {
	if v != nil {
		f[key] = *v
	}
}

func putInt(f map[string]any, key string, v *int) {
	if v != nil {
		f[key] = *v
	}
}

func putInt64(f map[string]any, key string, v *int64) {
	if v != nil {
		f[key] = *v
	}
}

func putFloat(f map[string]any, key string, v *float64) {
	if v != nil {
		f[key] = *v
	}
}

func putTime(f map[string]any, key string, v *time.Time) {
	if v != nil {
		f[key] = *v
	}
}
