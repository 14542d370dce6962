package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/ui"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "List and edit the stars in your galaxy",
}

var ideasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every idea",
	Args:  cobra.NoArgs,
	RunE:  runIdeasList,
}

var ideasAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an idea; it is placed automatically unless --x and --y are given",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeasAdd,
}

var ideasUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an idea's title, description or status",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeasUpdate,
}

var ideasRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an idea and every constellation touching it",
	Args:    cobra.ExactArgs(1),
	RunE:    runIdeasRm,
}

var ideasMoveCmd = &cobra.Command{
	Use:   "move <id> <x> <y>",
	Short: "Move an idea to normalized coordinates",
	Args:  cobra.ExactArgs(3),
	RunE:  runIdeasMove,
}

var ideasRelatedCmd = &cobra.Command{
	Use:   "related <id>",
	Short: "Find similar ideas across every galaxy",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeasRelated,
}

func init() {
	ideasAddCmd.Flags().StringP("description", "d", "", "longer description")
	ideasAddCmd.Flags().StringP("status", "s", string(galaxy.StatusSpark), "initial status")
	ideasAddCmd.Flags().Float64("x", 0, "normalized x position")
	ideasAddCmd.Flags().Float64("y", 0, "normalized y position")

	ideasUpdateCmd.Flags().StringP("title", "t", "", "new title")
	ideasUpdateCmd.Flags().StringP("description", "d", "", "new description")
	ideasUpdateCmd.Flags().StringP("status", "s", "", "new status")

	ideasCmd.AddCommand(ideasListCmd, ideasAddCmd, ideasUpdateCmd, ideasRmCmd, ideasMoveCmd, ideasRelatedCmd)
	rootCmd.AddCommand(ideasCmd)
}

func runIdeasList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	ui.New().Ideas(g.Ideas())
	return nil
}

func runIdeasAdd(cmd *cobra.Command, args []string) error {
	status, err := galaxy.ParseStatus(mustString(cmd, "status"))
	if err != nil {
		return err
	}
	draft := galaxy.IdeaDraft{
		Title:       args[0],
		Description: mustString(cmd, "description"),
		Status:      status,
	}
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		draft.Position = &geom.Point{X: x, Y: y}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	r, err := g.Run(cmd.Context(), g.AddIdea(draft))
	if err != nil {
		return err
	}
	printer := ui.New()
	printer.Success("star added")
	printer.Idea(r.Idea())
	return nil
}

func runIdeasUpdate(cmd *cobra.Command, args []string) error {
	var patch galaxy.IdeaPatch
	if cmd.Flags().Changed("title") {
		v := mustString(cmd, "title")
		patch.Title = &v
	}
	if cmd.Flags().Changed("description") {
		v := mustString(cmd, "description")
		patch.Description = &v
	}
	if cmd.Flags().Changed("status") {
		s, err := galaxy.ParseStatus(mustString(cmd, "status"))
		if err != nil {
			return err
		}
		patch.Status = &s
	}
	if patch.Empty() {
		return fmt.Errorf("nothing to update: pass --title, --description or --status")
	}
	return updateIdea(cmd, args[0], patch)
}

func runIdeasMove(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", args[1], err)
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid y %q: %w", args[2], err)
	}
	return updateIdea(cmd, args[0], galaxy.IdeaPatch{Position: &geom.Point{X: x, Y: y}})
}

func updateIdea(cmd *cobra.Command, id string, patch galaxy.IdeaPatch) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	r, err := g.Run(cmd.Context(), g.UpdateIdea(id, patch))
	if err != nil {
		return err
	}
	printer := ui.New()
	printer.Success("star updated")
	printer.Idea(r.Idea())
	return nil
}

func runIdeasRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	idea, ok := g.Idea(args[0])
	if !ok {
		return fmt.Errorf("idea %q: %w", args[0], galaxy.ErrNotFound)
	}
	links := len(g.LinksOf(idea.ID))
	if _, err := g.Run(cmd.Context(), g.RemoveIdea(idea.ID)); err != nil {
		return err
	}
	ui.New().Success(fmt.Sprintf("removed %q and %d constellation(s)", idea.Title, links))
	return nil
}

func runIdeasRelated(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, b, err := openGalaxy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	entries, err := b.Explore.Related(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	ui.New().Related(entries)
	return nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
