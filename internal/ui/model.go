// Package ui implements the buzzer console: a bubbletea program that
// renders the player panels and scoreboard, routes configured keys to
// the game machine, and fans machine events out to the sound, journal,
// and tracing sinks.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/quizhost/buzzkit/internal/config"
	"github.com/quizhost/buzzkit/internal/game"
	"github.com/quizhost/buzzkit/internal/history"
	"github.com/quizhost/buzzkit/internal/log"
	"github.com/quizhost/buzzkit/internal/sound"
	"github.com/quizhost/buzzkit/internal/tracing"
)

// tickMsg drives one button scan.
type tickMsg time.Time

// matchStartedMsg delivers the journal row for this sitting.
type matchStartedMsg struct {
	match history.Match
	err   error
}

// judgmentRecordedMsg reports the outcome of a journal append.
type judgmentRecordedMsg struct {
	err error
}

// ConfigReloadedMsg asks the console to adopt a changed config file.
// Only cosmetic settings are adopted mid-game; the roster is fixed.
type ConfigReloadedMsg struct {
	Config config.Config
}

// Model is the console state.
type Model struct {
	cfg     config.Config
	machine *game.Machine
	sampler *game.Sampler
	source  *keySource
	buttons map[string]game.Button
	keymap  Keymap
	help    help.Model

	snd  *sound.Player
	repo history.Repository // nil when the journal is disabled

	match     history.Match
	haveMatch bool
	seq       int

	span trace.Span // open round span, nil while idle

	status string
	scores []game.PlayerScore
	lamps  []bool

	width  int
	height int
}

// New assembles the console. repo may be nil to disable the journal.
func New(cfg config.Config, snd *sound.Player, repo history.Repository) Model {
	source := newKeySource()
	machine := game.NewMachine(len(cfg.Players), game.Rules{
		ResetAbortsRound: cfg.Rules.ResetAbortsRound,
	})

	return Model{
		cfg:     cfg,
		machine: machine,
		sampler: game.NewSampler(source, len(cfg.Players)),
		source:  source,
		buttons: buttonBindings(cfg),
		keymap:  newKeymap(cfg),
		help:    help.New(),
		snd:     snd,
		repo:    repo,
		status:  "Waiting for a buzz.",
		scores:  machine.Snapshot(),
		lamps:   machine.Indicators(),
	}
}

// Init starts the scan tick and, when journaling, opens the match row.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.repo != nil {
		cmds = append(cmds, m.startMatch())
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.ScanInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) startMatch() tea.Cmd {
	repo := m.repo
	players := len(m.cfg.Players)
	return func() tea.Msg {
		match, err := repo.StartMatch(players)
		return matchStartedMsg{match: match, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			if b, ok := m.buttons[msg.String()]; ok {
				log.Debug(log.CatInput, "Button pressed", "button", b.String())
				m.source.Press(b)
			}
		}

	case tickMsg:
		events := m.machine.HandleScan(m.sampler.Scan())
		cmd := m.dispatch(events)
		m.lamps = m.machine.Indicators()
		m.scores = m.machine.Snapshot()
		return m, tea.Batch(cmd, m.tick())

	case matchStartedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatDB, "Starting match failed; journal disabled for this sitting", msg.err)
			m.repo = nil
			break
		}
		m.match = msg.match
		m.haveMatch = true
		log.Info(log.CatDB, "Match journal opened", "match", msg.match.ID)

	case judgmentRecordedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatDB, "Recording judgment failed", msg.err)
		}

	case ConfigReloadedMsg:
		m.reload(msg.Config)
	}

	return m, nil
}

// dispatch applies machine events to the sinks and returns any async
// follow-up commands (journal appends).
func (m *Model) dispatch(events []game.Event) tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range events {
		switch ev := ev.(type) {
		case game.BuzzedEvent:
			m.snd.PlayBuzz(ev.Player)
			m.span = tracing.StartRound(ev.Player)
			m.status = fmt.Sprintf("%s buzzed in! Correct (%s) or wrong (%s)?",
				m.playerName(ev.Player), m.cfg.Keys.Correct, m.cfg.Keys.Wrong)
			log.Info(log.CatGame, "Buzz", "player", ev.Player)

		case game.JudgedEvent:
			m.seq++
			scoreAfter := m.machine.Snapshot()[ev.Player].Score
			if ev.Verdict == game.VerdictCorrect {
				m.snd.Play(sound.CueCorrect)
				m.status = fmt.Sprintf("%s answered correctly. Everyone is back in.",
					m.playerName(ev.Player))
			} else {
				m.snd.Play(sound.CueWrong)
				m.status = fmt.Sprintf("%s answered wrong and is locked out.",
					m.playerName(ev.Player))
			}
			if m.span != nil {
				tracing.EndJudged(m.span, ev.Verdict.String(), scoreAfter)
				m.span = nil
			}
			log.Info(log.CatGame, "Judgment", "player", ev.Player,
				"verdict", ev.Verdict.String(), "score", scoreAfter)
			if cmd := m.recordJudgment(ev.Player, ev.Verdict, scoreAfter); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case game.RoundAbortedEvent:
			if m.span != nil {
				tracing.EndAborted(m.span)
				m.span = nil
			}
			m.status = fmt.Sprintf("Round aborted; %s keeps their score.",
				m.playerName(ev.Player))
			log.Info(log.CatGame, "Round aborted", "player", ev.Player)

		case game.ResetEvent:
			m.status = "All players back in. Waiting for a buzz."
			log.Info(log.CatGame, "Reset")

		case game.ScoreReportEvent:
			m.scores = ev.Scores
			log.Info(log.CatGame, "Scores", "report", scoreline(ev.Scores))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) recordJudgment(player int, verdict game.Verdict, scoreAfter int) tea.Cmd {
	if m.repo == nil || !m.haveMatch {
		return nil
	}
	repo := m.repo
	j := history.Judgment{
		MatchID:    m.match.ID,
		Seq:        m.seq,
		Player:     player,
		Verdict:    verdict.String(),
		ScoreAfter: scoreAfter,
	}
	return func() tea.Msg {
		return judgmentRecordedMsg{err: repo.RecordJudgment(j)}
	}
}

// reload adopts cosmetic settings from a changed config file. The
// roster (player count) and the journal stay as they were at launch.
func (m *Model) reload(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		log.Warn(log.CatConfig, "Ignoring invalid config reload", "err", err)
		return
	}
	if len(cfg.Players) != len(m.cfg.Players) {
		log.Warn(log.CatConfig, "Ignoring roster change mid-game",
			"have", len(m.cfg.Players), "want", len(cfg.Players))
		return
	}

	m.cfg.Players = cfg.Players
	m.cfg.Keys = cfg.Keys
	m.cfg.Sound = cfg.Sound
	m.buttons = buttonBindings(m.cfg)
	m.keymap = newKeymap(m.cfg)

	snd, err := sound.New(sound.Options{
		Enabled:       cfg.Sound.Enabled,
		BuzzOverrides: buzzOverrides(cfg),
	})
	if err != nil {
		log.ErrorErr(log.CatSound, "Rebuilding sound player failed", err)
	} else {
		m.snd = snd
	}
	log.Info(log.CatConfig, "Config reloaded")
}

func (m Model) playerName(i int) string {
	if i >= 0 && i < len(m.cfg.Players) {
		return m.cfg.Players[i].Name
	}
	return fmt.Sprintf("Player %d", i+1)
}

func scoreline(scores []game.PlayerScore) string {
	out := ""
	for i, ps := range scores {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("p%d=%d", ps.Player, ps.Score)
	}
	return out
}

// buzzOverrides collects the per-seat buzz clips from config.
func buzzOverrides(cfg config.Config) map[int]string {
	overrides := make(map[int]string)
	for i, p := range cfg.Players {
		if p.Buzz != "" {
			overrides[i] = p.Buzz
		}
	}
	return overrides
}
