package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0", formatScore(0))
	assert.Equal(t, "+3", formatScore(3))
	assert.Equal(t, "-2", formatScore(-2))
}

func TestLamp_Glyphs(t *testing.T) {
	assert.Contains(t, Lamp(true, false), LampOn)
	assert.Contains(t, Lamp(false, false), LampOff)
	assert.Contains(t, Lamp(true, true), LampOn)
}
