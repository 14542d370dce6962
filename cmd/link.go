package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfield/internal/ui"
)

var linkCmd = &cobra.Command{
	Use:   "link <id1> <id2>",
	Short: "Join two ideas into a constellation",
	Args:  cobra.ExactArgs(2),
	RunE:  runLink,
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <constellation-id>",
	Short: "Remove a constellation",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlink,
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List constellations",
	Args:  cobra.NoArgs,
	RunE:  runLinks,
}

func init() {
	rootCmd.AddCommand(linkCmd, unlinkCmd, linksCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	r, err := g.Run(cmd.Context(), g.LinkIdeas(args[0], args[1]))
	if err != nil {
		return err
	}
	a, z, _ := g.Endpoints(r.Link())
	ui.New().Success(fmt.Sprintf("constellation %s: %q ✧ %q", r.Link().ID, a.Title, z.Title))
	return nil
}

func runUnlink(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	if _, err := g.Run(cmd.Context(), g.UnlinkIdeas(args[0])); err != nil {
		return err
	}
	ui.New().Success("constellation removed")
	return nil
}

func runLinks(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	ui.New().Links(g.Links(), g.Ideas())
	return nil
}
