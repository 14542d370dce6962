package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/raster"
	"github.com/papapumpkin/starfield/internal/render"
	"github.com/papapumpkin/starfield/internal/scene"
	"github.com/papapumpkin/starfield/internal/ui"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the galaxy to a PNG image",
	Long: `Render the galaxy at full resolution and write it as a PNG. The animation
is advanced by --frames fixed steps first, so the same galaxy, seed and
frame count always produce the same image.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringP("output", "o", "starfield.png", "PNG file to write")
	snapshotCmd.Flags().Int("width", 1280, "image width in pixels")
	snapshotCmd.Flags().Int("height", 800, "image height in pixels")
	snapshotCmd.Flags().Int("frames", 1, "animation frames to advance before capturing")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	printer := ui.New()
	out, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	frames, _ := cmd.Flags().GetInt("frames")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", width, height)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadPalette(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	g, b, err := openGalaxy(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	sc := scene.New(cfg.Scene, table)
	sc.Renderer.SizeScale = 1

	canvas, err := raster.New(width, height, raster.DefaultFontSize)
	if err != nil {
		return err
	}

	clock := &render.FixedStep{Step: cfg.Scene.Step}
	var t float64
	for i := 0; i < max(frames, 1); i++ {
		t = clock.Advance(time.Time{})
	}
	frame := render.Scene{
		Viewport: geom.NewViewport(float64(width), float64(height)),
		Ideas:    g.Ideas(),
		Links:    g.VisibleLinks(),
		Backdrop: sc.Backdrop,
	}
	sc.Renderer.Draw(canvas, frame, t)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", out, err)
	}
	if err := canvas.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: close %s: %w", out, err)
	}
	printer.Success(fmt.Sprintf("wrote %s (%dx%d, %d stars)", out, width, height, len(frame.Ideas)))
	return nil
}
