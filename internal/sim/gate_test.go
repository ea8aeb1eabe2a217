package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_TryEnterLeave(t *testing.T) {
	g := NewGate()

	assert.True(t, g.TryEnter(OpEvaluate))
	assert.False(t, g.TryEnter(OpEvaluate), "second entry while held must be refused")
	assert.True(t, g.Held(OpEvaluate))

	g.Leave(OpEvaluate)
	assert.False(t, g.Held(OpEvaluate))
	assert.True(t, g.TryEnter(OpEvaluate), "latch must be reusable after leave")
}

func TestGate_LatchesAreIndependent(t *testing.T) {
	g := NewGate()

	assert.True(t, g.TryEnter(OpEvaluate))
	assert.True(t, g.TryEnter(OpImproveCoverage))
	assert.True(t, g.TryEnter(OpDetectBlindSpots))
	assert.True(t, g.TryEnter(OpPersist))

	g.Leave(OpImproveCoverage)
	assert.True(t, g.Held(OpEvaluate))
	assert.False(t, g.Held(OpImproveCoverage))
}

func TestGate_LeaveWithoutEnterIsHarmless(t *testing.T) {
	g := NewGate()
	g.Leave(OpPersist)
	assert.True(t, g.TryEnter(OpPersist))
}
