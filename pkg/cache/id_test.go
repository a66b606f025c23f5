package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlueprintIdentityIsByPointerNotValue(t *testing.T) {
	a := &countingLeaf{value: 1}
	b := &countingLeaf{value: 1}

	bpA := NewBlueprint[int, int](a)
	bpB := NewBlueprint[int, int](b)

	assert.NotEqual(t, bpA.ID(), bpB.ID(), "distinct allocations with identical field values must not share identity")
	assert.Equal(t, bpA.ID(), bpA.Clone().ID())
}

func TestRequirePointerIdentityPanicsOnNonPointer(t *testing.T) {
	assert.Panics(t, func() {
		requirePointerIdentity(countingLeaf{})
	})
}
