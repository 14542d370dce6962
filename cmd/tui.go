package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/config"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/journal"
	"github.com/papapumpkin/starfield/internal/logging"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/scene"
	"github.com/papapumpkin/starfield/internal/session"
	"github.com/papapumpkin/starfield/internal/store"
	"github.com/papapumpkin/starfield/internal/tui"
	"github.com/papapumpkin/starfield/internal/ui"
)

// tuiCmd opens the interactive galaxy view.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive galaxy view",
	Long: `Open the galaxy in the terminal. Click a star to inspect it, drag it to
move it, scroll to zoom and press n to add a new idea. With --user the
public profile of another user is shown read-only.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("user", "", "view another user's public galaxy (read-only)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	printer := ui.New()

	if !isStderrTTY() {
		return fmt.Errorf("starfield tui requires a TTY (terminal)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadPalette(cfg)
	if err != nil {
		return err
	}

	log, flush, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return err
	}
	defer flush()

	emitter, err := openJournal(cfg.JournalPath)
	if err != nil {
		printer.Warn(fmt.Sprintf("event journal unavailable: %v", err))
		emitter = nil
	}
	defer emitter.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	sc := scene.New(cfg.Scene, table)
	opts := []store.Option{store.WithLogger(log.Named("store")), store.WithPlacer(sc.Placer())}

	owner, _ := cmd.Flags().GetString("user")
	viewer := session.Session{UserID: b.User}
	var g *store.Galaxy
	if owner != "" && viewer.ReadOnly(owner) {
		g = store.NewReadOnly(profileLoader(b, owner), opts...)
	} else {
		owner = b.User
		g = store.New(b.Galaxy, opts...)
	}

	p, err := tui.NewProgram(tui.Options{
		Galaxy:   g,
		Scene:    sc,
		Explorer: b.Explore,
		Journal:  emitter,
		Logger:   log.Named("tui"),
		User:     owner,
	})
	if err != nil {
		return err
	}

	config.Watch(func(next config.Config) {
		t, err := loadPalette(next)
		if err != nil {
			p.Send(tui.MsgConfigError{Err: err})
			return
		}
		log.Info("config reloaded")
		p.Send(tui.MsgConfigReloaded{Scene: next.Scene, Palette: t})
	}, func(err error) {
		log.Warn("config reload rejected", zap.Error(err))
		p.Send(tui.MsgConfigError{Err: err})
	})

	return tui.RunProgram(p)
}

// profileLoader fetches a user's public profile as a scene.
func profileLoader(b *backend, userID string) store.LoadFunc {
	return func(ctx context.Context) ([]galaxy.Idea, []galaxy.Constellation, error) {
		prof, err := b.Profile(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		return prof.Ideas, prof.Constellations, nil
	}
}

// loadPalette returns the configured status palette, or the built-in one.
func loadPalette(cfg config.Config) (palette.Table, error) {
	if cfg.PalettePath == "" {
		return palette.Default(), nil
	}
	t, err := palette.Load(cfg.PalettePath)
	if err != nil {
		return palette.Table{}, fmt.Errorf("failed to load palette: %w", err)
	}
	return t, nil
}

// openJournal opens the event journal, creating its directory if needed.
func openJournal(path string) (*journal.Emitter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: create dir: %w", err)
	}
	return journal.NewEmitter(path)
}

func isStderrTTY() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
