package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfield/internal/journal"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/ui"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the galaxy event journal",
	Long: `Reads and formats the JSONL event journal written by the interactive view:
hovers, selections, drags, links and every backend result.

With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	eventsCmd.Flags().String("file", "", "journal file (default journal_path)")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, _ []string) error {
	follow, _ := cmd.Flags().GetBool("follow")
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.JournalPath
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("events: open %s: %w", path, err)
	}
	defer f.Close()

	printer := ui.NewWriter(cmd.OutOrStdout(), cmd.ErrOrStderr(), palette.Default(), false)

	// Print all existing events.
	reader := bufio.NewReader(f)
	if err := printLines(printer, reader); err != nil {
		return fmt.Errorf("events: read %s: %w", path, err)
	}

	if !follow {
		return nil
	}
	return tailFollow(cmd.Context(), printer, reader, path)
}

// printLines prints every complete line available from r.
func printLines(p *ui.Printer, r *bufio.Reader) error {
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			printEvent(p, line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// tailFollow watches the file for new data using fsnotify and prints new
// events until ctx ends.
func tailFollow(ctx context.Context, p *ui.Printer, r *bufio.Reader, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("events: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("events: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("events: watch %s: %w", path, err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			if err := printLines(p, r); err != nil {
				return fmt.Errorf("events: read %s: %w", path, err)
			}
		}
	}
}

// printEvent decodes a JSONL line and prints a human-readable representation.
func printEvent(p *ui.Printer, line string) {
	evt, err := journal.Decode(line)
	if err != nil {
		p.Warn("??? " + line)
		return
	}
	p.Event(evt)
}
