package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/model"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:   "rm <node>",
	Short: "Delete a node and everything inside it",
	Long: `Delete a link, widget or folder. Deleting a folder also deletes all its
contents. This cannot be undone, so --yes is required.

Example:
  hive rm Reading --yes`,
	Args: cobra.ExactArgs(1),
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

		inside := 0
		tree.Walk(func(c model.Node, _ int) bool {
			if tree.IsAncestor(n.ID, c.ID) {
				inside++
			}
			return true
		})

		if !rmYes {
			msg := fmt.Sprintf("would delete %s %q", kindLabel(n), n.Title)
			if inside > 0 {
				msg += fmt.Sprintf(" and %d items inside", inside)
			}
			return errors.New(msg + "; pass --yes to confirm")
		}

		if err := sess.store.DeleteNode(ctx, n.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s %q\n", green("✓"), kindLabel(n), n.Title)
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "confirm the deletion")
	rootCmd.AddCommand(rmCmd)
}
