package regression

import (
	"fmt"
	"sort"
)

// Hyperparams is the raw hyperparameter mapping from configuration.
// Values arrive as whatever the YAML decoder produced, so lookups
// coerce numeric types.
type Hyperparams map[string]interface{}

// asFloat64 coerces the numeric types the YAML decoder emits for
// params.yaml values. Anything else reports false.
func asFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// Int returns the named hyperparameter as an int, or the default when
// absent.
func (hp Hyperparams) Int(key string, def int) int {
	v, ok := hp[key]
	if !ok {
		return def
	}
	if f, ok := asFloat64(v); ok {
		return int(f)
	}
	return def
}

// Float returns the named hyperparameter as a float64, or the default
// when absent.
func (hp Hyperparams) Float(key string, def float64) float64 {
	v, ok := hp[key]
	if !ok {
		return def
	}
	if f, ok := asFloat64(v); ok {
		return f
	}
	return def
}

// Int64 returns the named hyperparameter as an int64, or the default
// when absent.
func (hp Hyperparams) Int64(key string, def int64) int64 {
	v, ok := hp[key]
	if !ok {
		return def
	}
	if f, ok := asFloat64(v); ok {
		return int64(f)
	}
	return def
}

// Validate rejects hyperparameter keys outside the accepted set, and
// non-numeric values for accepted keys.
func (hp Hyperparams) Validate(accepted ...string) error {
	allowed := make(map[string]bool, len(accepted))
	for _, key := range accepted {
		allowed[key] = true
	}

	var unknown []string
	for key, value := range hp {
		if !allowed[key] {
			unknown = append(unknown, key)
			continue
		}
		if _, ok := asFloat64(value); !ok {
			return fmt.Errorf("hyperparameter %q has non-numeric value %v", key, value)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		sort.Strings(accepted)
		return fmt.Errorf("unknown hyperparameters %v (accepted: %v)", unknown, accepted)
	}
	return nil
}
