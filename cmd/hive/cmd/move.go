package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/reparent"
)

var moveCmd = &cobra.Command{
	Use:   "move <node> <folder>",
	Short: "Move a link, widget or folder into another folder",
	Long: `Move a node into another folder. Folders can be nested, but a folder
cannot be moved into itself or below itself.

Examples:
  hive move GitHub Dev
  hive move Reading Dev`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sess, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		tree, err := sess.load(ctx, cmd.ErrOrStderr(), false)
		if err != nil {
			return err
		}
		n, err := resolveNode(tree, args[0])
		if err != nil {
			return err
		}
		target, err := resolveFolder(tree, args[1])
		if err != nil {
			return err
		}

		ctrl := reparent.New(sess.store)
		ctrl.BeginDrag(n.ID)
		moved, err := ctrl.Drop(ctx, target.ID)
		if err != nil {
			return err
		}
		if !moved {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already in %s\n", yellow("•"), n.Title, target.Title)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Moved %s to %s\n", green("✓"), n.Title, target.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
