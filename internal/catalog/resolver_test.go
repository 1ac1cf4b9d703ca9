package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCombination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	attrs := []AttributeConfigInput{
		{AttributeID: 1, Name: "Color", Values: []string{"Red", "Blue"}},
		{AttributeID: 2, Name: "Size", Values: []string{"M"}},
	}

	setup := func() (*fakeStore, int64, int64) {
		st := newFakeStore()
		redID := st.addAttributeValue(1, "Red")
		mID := st.addAttributeValue(2, "M")
		return st, redID, mID
	}

	t.Run("resolves every matching pair", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine()
		st, redID, mID := setup()

		ids, err := e.resolveCombination(ctx, st, 1, map[string]string{
			"Color": "Red",
			"Size":  "M",
		}, attrs)
		require.NoError(t, err)
		assert.Equal(t, []int64{redID, mID}, ids)
	})

	t.Run("attribute and value names match case-insensitively", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine()
		st, redID, mID := setup()

		ids, err := e.resolveCombination(ctx, st, 1, map[string]string{
			"color": "RED",
			"SIZE":  "m",
		}, attrs)
		require.NoError(t, err)
		assert.Equal(t, []int64{redID, mID}, ids)
	})

	t.Run("unknown value is skipped under the lenient policy", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine()
		st, _, mID := setup()

		ids, err := e.resolveCombination(ctx, st, 1, map[string]string{
			"Color": "Chartreuse",
			"Size":  "M",
		}, attrs)
		require.NoError(t, err)
		assert.Equal(t, []int64{mID}, ids)
	})

	t.Run("unknown attribute name is skipped under the lenient policy", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine()
		st, redID, _ := setup()

		ids, err := e.resolveCombination(ctx, st, 1, map[string]string{
			"Color":  "Red",
			"Flavor": "Mint",
		}, attrs)
		require.NoError(t, err)
		assert.Equal(t, []int64{redID}, ids)
	})

	t.Run("unknown value fails the save under the strict policy", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(WithAttributeMismatchPolicy(MismatchFail))
		st, _, _ := setup()

		_, err := e.resolveCombination(ctx, st, 1, map[string]string{
			"Color": "Chartreuse",
		}, attrs)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
		assert.ErrorContains(t, err, `"Chartreuse"`)
	})

	t.Run("unknown attribute fails the save under the strict policy", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(WithAttributeMismatchPolicy(MismatchFail))
		st, _, _ := setup()

		_, err := e.resolveCombination(ctx, st, 1, map[string]string{
			"Color":  "Red",
			"Flavor": "Mint",
		}, attrs)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
		assert.ErrorContains(t, err, `"Flavor"`)
	})
}
