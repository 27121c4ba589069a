package sound

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/quizhost/buzzkit/internal/log"
)

// Cue identifies one audio clip.
type Cue int

const (
	// CueIntro plays once at startup, before the first round.
	CueIntro Cue = iota
	// CueBuzz plays when a player takes the buzz.
	CueBuzz
	// CueCorrect plays on a correct verdict.
	CueCorrect
	// CueWrong plays on a wrong verdict.
	CueWrong
)

func (c Cue) String() string {
	switch c {
	case CueIntro:
		return "intro"
	case CueBuzz:
		return "buzz"
	case CueCorrect:
		return "correct"
	case CueWrong:
		return "wrong"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

func (c Cue) filename() string { return c.String() + ".wav" }

// Options configures a Player.
type Options struct {
	// Enabled false yields a silent no-op player; the game never
	// observes the difference.
	Enabled bool
	// CacheDir overrides where embedded clips are extracted. Empty uses
	// the user cache directory.
	CacheDir string
	// BuzzOverrides maps a player index to a WAV path replacing the
	// shared buzz clip for that seat.
	BuzzOverrides map[int]string
}

// Player plays cues through OS-native audio commands, fire-and-forget.
// Playback failures are logged and swallowed: the round logic must stay
// correct when audio silently fails.
type Player struct {
	enabled   bool
	dir       string
	overrides map[int]string
}

// New creates a Player, extracting the embedded clips to the cache
// directory. A disabled player skips extraction entirely.
func New(opts Options) (*Player, error) {
	p := &Player{enabled: opts.Enabled, overrides: opts.BuzzOverrides}
	if !opts.Enabled {
		return p, nil
	}

	dir := opts.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user cache directory: %w", err)
		}
		dir = filepath.Join(base, "buzzkit", "sounds")
	}
	if err := extractClips(dir); err != nil {
		return nil, err
	}
	p.dir = dir
	return p, nil
}

// extractClips writes every embedded WAV into dir, skipping files that
// are already present with the right size.
func extractClips(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating sound cache: %w", err)
	}
	entries, err := fs.ReadDir(soundFiles, "sounds")
	if err != nil {
		return fmt.Errorf("reading embedded sounds: %w", err)
	}
	for _, entry := range entries {
		data, err := soundFiles.ReadFile("sounds/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading embedded clip %s: %w", entry.Name(), err)
		}
		dst := filepath.Join(dir, entry.Name())
		if info, err := os.Stat(dst); err == nil && info.Size() == int64(len(data)) {
			continue
		}
		if err := os.WriteFile(dst, data, 0o600); err != nil {
			return fmt.Errorf("extracting clip %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Play triggers a cue and returns immediately.
func (p *Player) Play(c Cue) {
	if !p.enabled {
		return
	}
	p.playFile(filepath.Join(p.dir, c.filename()), c.String())
}

// PlayBuzz triggers the buzz cue for a specific seat, honoring any
// per-player override.
func (p *Player) PlayBuzz(player int) {
	if !p.enabled {
		return
	}
	if path, ok := p.overrides[player]; ok && path != "" {
		p.playFile(path, fmt.Sprintf("buzz-override-%d", player))
		return
	}
	p.Play(CueBuzz)
}

func (p *Player) playFile(path, label string) {
	name, args, ok := playbackCommand(path)
	if !ok {
		log.Warn(log.CatSound, "No audio playback command available", "goos", runtime.GOOS)
		return
	}
	go func() {
		// #nosec G204 -- command name comes from the fixed per-OS table
		cmd := exec.Command(name, args...)
		if err := cmd.Run(); err != nil {
			log.Debug(log.CatSound, "Playback failed", "cue", label, "err", err)
		}
	}()
}

// playbackCommand picks the OS-native player for a clip. Linux prefers
// PulseAudio's paplay and falls back to ALSA's aplay.
func playbackCommand(path string) (name string, args []string, ok bool) {
	switch runtime.GOOS {
	case "darwin":
		return "afplay", []string{path}, true
	case "linux":
		for _, candidate := range []string{"paplay", "aplay"} {
			if _, err := exec.LookPath(candidate); err == nil {
				return candidate, []string{path}, true
			}
		}
		return "", nil, false
	case "windows":
		expr := fmt.Sprintf("(New-Object Media.SoundPlayer %q).PlaySync()", path)
		return "powershell", []string{"-NoProfile", "-Command", expr}, true
	default:
		return "", nil, false
	}
}
