package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/quizhost/buzzkit/internal/config"
	"github.com/quizhost/buzzkit/internal/game"
)

// Keymap holds the console's non-game key bindings plus the display
// bindings for the help footer.
type Keymap struct {
	Quit key.Binding
	Help key.Binding

	// Display-only bindings describing the configured game keys.
	Buzz    key.Binding
	Correct key.Binding
	Wrong   key.Binding
	Reset   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Buzz, k.Correct, k.Wrong, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Buzz, k.Correct, k.Wrong, k.Reset},
		{k.Help, k.Quit},
	}
}

// newKeymap builds the keymap from the configured bindings.
func newKeymap(cfg config.Config) Keymap {
	playerKeys := make([]string, len(cfg.Players))
	for i, p := range cfg.Players {
		playerKeys[i] = p.Key
	}

	return Keymap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Buzz: key.NewBinding(
			key.WithKeys(playerKeys...),
			key.WithHelp(strings.Join(playerKeys, "/"), "buzz"),
		),
		Correct: key.NewBinding(
			key.WithKeys(cfg.Keys.Correct),
			key.WithHelp(cfg.Keys.Correct, "correct"),
		),
		Wrong: key.NewBinding(
			key.WithKeys(cfg.Keys.Wrong),
			key.WithHelp(cfg.Keys.Wrong, "wrong"),
		),
		Reset: key.NewBinding(
			key.WithKeys(cfg.Keys.Reset),
			key.WithHelp(cfg.Keys.Reset, "reset"),
		),
	}
}

// buttonBindings maps each configured key string to its button.
func buttonBindings(cfg config.Config) map[string]game.Button {
	buttons := make(map[string]game.Button, len(cfg.Players)+3)
	for i, p := range cfg.Players {
		buttons[p.Key] = game.PlayerButton(i)
	}
	buttons[cfg.Keys.Correct] = game.ButtonCorrect
	buttons[cfg.Keys.Wrong] = game.ButtonWrong
	buttons[cfg.Keys.Reset] = game.ButtonReset
	return buttons
}
