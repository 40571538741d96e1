package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel_EmptyUntilFirstStore(t *testing.T) {
	level := NewLevel()

	_, ok := level.Latest()
	assert.False(t, ok)

	level.Store(0.5)
	value, ok := level.Latest()
	assert.True(t, ok)
	assert.Equal(t, 0.5, value)
}

func TestLevel_StoreClampsRange(t *testing.T) {
	level := NewLevel()

	level.Store(1.7)
	value, _ := level.Latest()
	assert.Equal(t, 1.0, value)

	level.Store(-0.3)
	value, _ = level.Latest()
	assert.Equal(t, 0.0, value)
}

func TestLevel_NewestValueWins(t *testing.T) {
	level := NewLevel()

	level.Store(0.2)
	level.Store(0.8)
	level.Store(0.1)

	value, _ := level.Latest()
	assert.Equal(t, 0.1, value)
}

func TestLevel_ResetEmptiesStream(t *testing.T) {
	level := NewLevel()

	level.Store(0.9)
	level.Reset()

	_, ok := level.Latest()
	assert.False(t, ok)
}
