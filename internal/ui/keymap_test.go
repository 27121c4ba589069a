package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhost/buzzkit/internal/config"
	"github.com/quizhost/buzzkit/internal/game"
)

func TestButtonBindings_Defaults(t *testing.T) {
	buttons := buttonBindings(config.Defaults())

	require.Len(t, buttons, 7)
	assert.Equal(t, game.PlayerButton(0), buttons["1"])
	assert.Equal(t, game.PlayerButton(3), buttons["4"])
	assert.Equal(t, game.ButtonCorrect, buttons["c"])
	assert.Equal(t, game.ButtonWrong, buttons["x"])
	assert.Equal(t, game.ButtonReset, buttons["r"])
}

func TestKeymap_HelpListsGameKeys(t *testing.T) {
	k := newKeymap(config.Defaults())

	short := k.ShortHelp()
	require.NotEmpty(t, short)
	assert.Equal(t, "1/2/3/4", short[0].Help().Key)

	full := k.FullHelp()
	require.Len(t, full, 2)
}

func TestKeySource_LatchUntilEndScan(t *testing.T) {
	s := newKeySource()

	s.Press(game.PlayerButton(1))
	assert.True(t, s.Pressed(game.PlayerButton(1)))
	assert.False(t, s.Pressed(game.PlayerButton(0)))

	s.EndScan()
	assert.False(t, s.Pressed(game.PlayerButton(1)))
}
