// Package cmd wires the buzzkit commands: the console itself plus the
// init and history helpers.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quizhost/buzzkit/internal/config"
	"github.com/quizhost/buzzkit/internal/history"
	"github.com/quizhost/buzzkit/internal/infrastructure/sqlite"
	"github.com/quizhost/buzzkit/internal/log"
	"github.com/quizhost/buzzkit/internal/sound"
	"github.com/quizhost/buzzkit/internal/tracing"
	"github.com/quizhost/buzzkit/internal/ui"
)

var (
	cfgFile       string
	flagPlayers   int
	flagNoSound   bool
	flagLogFile   string
	flagLogLevel  string
	flagTraceFile string
)

var rootCmd = &cobra.Command{
	Use:   "buzzkit",
	Short: "Quiz buzzer console for a shared keyboard",
	Long: `buzzkit turns one keyboard into a quiz buzzer rig: each player gets a
buzz key, the host judges answers with the correct/wrong keys, and the
reset key starts a fresh question with everyone back in.`,
	SilenceUsage: true,
	RunE:         runConsole,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: user config dir)")
	rootCmd.Flags().IntVar(&flagPlayers, "players", 0, "play with N default seats, ignoring the configured roster")
	rootCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "disable audio cues")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write diagnostics to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagTraceFile, "trace-file", "", "write one trace span per round to this file")
}

// configPath resolves the config file location from the flag or the
// default user config dir.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultConfigPath()
}

// loadConfig layers the config file and flag overrides over defaults.
// A missing config file is fine: defaults describe a playable game.
func loadConfig() (config.Config, error) {
	cfg := config.Defaults()

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if flagPlayers > 0 {
		if flagPlayers > config.MaxPlayers {
			return cfg, fmt.Errorf("--players: at most %d seats are supported", config.MaxPlayers)
		}
		seats := make([]config.PlayerConfig, flagPlayers)
		keys := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
		for i := range seats {
			seats[i] = config.PlayerConfig{Name: fmt.Sprintf("Player %d", i+1), Key: keys[i]}
		}
		cfg.Players = seats
	}
	if flagNoSound {
		cfg.Sound.Enabled = false
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := log.Init(cfg.LogFile, log.ParseLevel(cfg.LogLevel)); err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	shutdownTracing, err := tracing.Init(flagTraceFile)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.ErrorErr(log.CatGame, "Trace shutdown failed", err)
		}
	}()

	snd, err := sound.New(sound.Options{
		Enabled:       cfg.Sound.Enabled,
		BuzzOverrides: buzzOverrides(cfg),
	})
	if err != nil {
		// The game must run even when audio setup fails.
		log.ErrorErr(log.CatSound, "Sound disabled", err)
		snd, _ = sound.New(sound.Options{Enabled: false})
	}

	var repo history.Repository
	if cfg.History.Enabled {
		db, err := openJournal(cfg)
		if err != nil {
			// Same policy as audio: the journal is a sink, not a dependency.
			log.ErrorErr(log.CatDB, "Journal disabled", err)
		} else {
			defer func() { _ = db.Close() }()
			repo = db.HistoryRepository()
		}
	}

	program := tea.NewProgram(ui.New(cfg, snd, repo), tea.WithAltScreen())

	path, err := configPath()
	if err == nil {
		stopWatch, watchErr := config.Watch(path, time.Second, func() {
			if reloaded, err := loadConfig(); err == nil {
				program.Send(ui.ConfigReloadedMsg{Config: reloaded})
			} else {
				log.Warn(log.CatConfig, "Reload skipped", "err", err)
			}
		})
		if watchErr != nil {
			log.Warn(log.CatConfig, "Config watch unavailable", "err", watchErr)
		} else {
			defer stopWatch()
		}
	}

	// The intro sting plays once, before the first scan.
	snd.Play(sound.CueIntro)

	_, err = program.Run()
	return err
}

func openJournal(cfg config.Config) (*sqlite.DB, error) {
	path := cfg.History.Path
	if path == "" {
		var err error
		path, err = config.DefaultHistoryPath()
		if err != nil {
			return nil, err
		}
	}
	return sqlite.NewDB(path)
}

func buzzOverrides(cfg config.Config) map[int]string {
	overrides := make(map[int]string)
	for i, p := range cfg.Players {
		if p.Buzz != "" {
			overrides[i] = p.Buzz
		}
	}
	return overrides
}
