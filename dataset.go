package config

import (
	"fmt"
)

// Dataset is a keyed configuration mapping produced by a Provider.
//
// Values are scalars, booleans, nested mappings (map[string]any or Dataset)
// or ordered sequences ([]any).
type Dataset map[string]any

// Clone returns a deep copy of the dataset. Cloning a nil dataset yields an
// empty, non-nil one.
func (d Dataset) Clone() Dataset {
	result := make(Dataset, len(d))

	for key, value := range d {
		result[key] = cloneValue(value)
	}

	return result
}

// Merge deep-merges override into base and returns a new Dataset.
//
// For every key of override: when both sides hold a mapping the merge recurses,
// otherwise the override value replaces the base value. Keys present only in
// base survive untouched. Neither input is modified.
func Merge(base, override Dataset) Dataset {
	result := base.Clone()

	for key, overrideValue := range override {
		baseValue, exists := result[key]
		if exists {
			baseMap, baseIsMap := asMapping(baseValue)
			overrideMap, overrideIsMap := asMapping(overrideValue)

			if baseIsMap && overrideIsMap {
				result[key] = map[string]any(Merge(baseMap, overrideMap))

				continue
			}
		}

		result[key] = cloneValue(overrideValue)
	}

	return result
}

// FromDocument turns a decoded document into a Dataset. An empty document
// yields an empty Dataset; a document whose root is not a mapping yields
// ErrNotMapping.
func FromDocument(document any) (Dataset, error) {
	if document == nil {
		return Dataset{}, nil
	}

	mapping, ok := Normalize(document).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, document)
	}

	return Dataset(mapping), nil
}

// Normalize converts decoder output into the value shapes a Dataset holds:
// every mapping becomes map[string]any (non-string keys are formatted with
// fmt.Sprint) and every slice becomes []any.
func Normalize(value any) any {
	switch typed := value.(type) {
	case Dataset:
		return normalizeMap(typed)
	case map[string]any:
		return normalizeMap(typed)
	case map[any]any:
		result := make(map[string]any, len(typed))

		for key, item := range typed {
			result[fmt.Sprint(key)] = Normalize(item)
		}

		return result
	case []map[string]any:
		result := make([]any, len(typed))

		for i, item := range typed {
			result[i] = normalizeMap(item)
		}

		return result
	case []any:
		result := make([]any, len(typed))

		for i, item := range typed {
			result[i] = Normalize(item)
		}

		return result
	default:
		return value
	}
}

func normalizeMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))

	for key, item := range m {
		result[key] = Normalize(item)
	}

	return result
}

// asMapping reports whether value is a mapping and returns it as a Dataset view.
func asMapping(value any) (Dataset, bool) {
	switch typed := value.(type) {
	case Dataset:
		return typed, true
	case map[string]any:
		return Dataset(typed), true
	default:
		return nil, false
	}
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Dataset:
		return typed.Clone()
	case map[string]any:
		return map[string]any(Dataset(typed).Clone())
	case []any:
		result := make([]any, len(typed))

		for i, item := range typed {
			result[i] = cloneValue(item)
		}

		return result
	default:
		return value
	}
}
