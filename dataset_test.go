package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_KeyRules(t *testing.T) {
	t.Parallel()

	base := Dataset{
		"only_base": "kept",
		"shared":    "base",
		"nested": map[string]any{
			"baz": "original",
			"qux": "original",
			"bee": "sting",
		},
	}
	override := Dataset{
		"only_override": "added",
		"shared":        "override",
		"nested": map[string]any{
			"baz": "new_value",
		},
	}

	merged := Merge(base, override)

	assert.Equal(t, "kept", merged["only_base"])
	assert.Equal(t, "added", merged["only_override"])
	assert.Equal(t, "override", merged["shared"])
	assert.Equal(t, map[string]any{
		"baz": "new_value",
		"qux": "original",
		"bee": "sting",
	}, merged["nested"])
}

func TestMerge_ReplacesAcrossKinds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		base     any
		override any
	}{
		{name: "mapping replaced by scalar", base: map[string]any{"a": 1}, override: "flat"},
		{name: "scalar replaced by mapping", base: "flat", override: map[string]any{"a": 1}},
		{name: "sequence replaced wholesale", base: []any{"a", "b", "c"}, override: []any{"z"}},
		{name: "mapping replaced by nil", base: map[string]any{"a": 1}, override: nil},
		{name: "bool replaced by false", base: true, override: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			merged := Merge(Dataset{"key": testCase.base}, Dataset{"key": testCase.override})

			require.Contains(t, merged, "key")
			assert.Equal(t, testCase.override, merged["key"])
		})
	}
}

func TestMerge_DeepNesting(t *testing.T) {
	t.Parallel()

	base := Dataset{
		"a": map[string]any{
			"b": map[string]any{
				"c": map[string]any{"keep": 1, "change": 1},
			},
		},
	}
	override := Dataset{
		"a": Dataset{
			"b": map[string]any{
				"c": map[string]any{"change": 2, "add": 3},
			},
		},
	}

	merged := Merge(base, override)

	assert.Equal(t, map[string]any{
		"b": map[string]any{
			"c": map[string]any{"keep": 1, "change": 2, "add": 3},
		},
	}, merged["a"])
}

func TestMerge_EmptyOverrideIsIdentity(t *testing.T) {
	t.Parallel()

	base := Dataset{
		"name":  "default",
		"list":  []any{"x", "y"},
		"inner": map[string]any{"flag": false},
	}

	assert.Equal(t, base, Merge(base, Dataset{}))
	assert.Equal(t, base, Merge(base, nil))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := Dataset{
		"inner": map[string]any{"value": "base"},
		"list":  []any{"a"},
	}
	override := Dataset{
		"inner": map[string]any{"value": "override", "extra": true},
	}

	merged := Merge(base, override)

	merged["inner"].(map[string]any)["value"] = "mutated"
	merged["list"].([]any)[0] = "mutated"

	assert.Equal(t, map[string]any{"value": "base"}, base["inner"])
	assert.Equal(t, []any{"a"}, base["list"])
	assert.Equal(t, map[string]any{"value": "override", "extra": true}, override["inner"])
}

func TestMerge_NilBase(t *testing.T) {
	t.Parallel()

	merged := Merge(nil, Dataset{"a": 1})

	assert.Equal(t, Dataset{"a": 1}, merged)
	assert.NotNil(t, Merge(nil, nil))
}

func TestDataset_Clone(t *testing.T) {
	t.Parallel()

	original := Dataset{
		"nested": Dataset{"deep": map[string]any{"x": 1}},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone["nested"].(Dataset)["deep"].(map[string]any)["x"] = 2

	assert.Equal(t, 1, original["nested"].(Dataset)["deep"].(map[string]any)["x"])
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	input := map[string]any{
		"generic": map[any]any{1: "one", "two": map[any]any{"three": 3}},
		"tables":  []map[string]any{{"name": "a"}, {"name": "b"}},
		"list":    []any{map[any]any{true: "yes"}},
		"dataset": Dataset{"k": "v"},
		"scalar":  "s",
	}

	normalized := Normalize(input)

	assert.Equal(t, map[string]any{
		"generic": map[string]any{"1": "one", "two": map[string]any{"three": 3}},
		"tables":  []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
		"list":    []any{map[string]any{"true": "yes"}},
		"dataset": map[string]any{"k": "v"},
		"scalar":  "s",
	}, normalized)
}

func TestFromDocument(t *testing.T) {
	t.Parallel()

	dataset, err := FromDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, Dataset{}, dataset)

	dataset, err = FromDocument(map[any]any{"name": "default", "port": 8080})
	require.NoError(t, err)
	assert.Equal(t, Dataset{"name": "default", "port": 8080}, dataset)

	for _, document := range []any{"scalar", []any{"a", "b"}, 42} {
		dataset, err = FromDocument(document)
		require.ErrorIs(t, err, ErrNotMapping)
		assert.Nil(t, dataset)
	}
}
