package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/model"
)

var renameCmd = &cobra.Command{
	Use:   "rename <folder-or-link> <title>",
	Short: "Rename a folder or link",
	Args:  cobra.ExactArgs(2),
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

		switch n.Kind {
		case model.KindFolder:
			err = sess.store.RenameFolder(ctx, n.ID, args[1])
		case model.KindLink:
			err = sess.store.RenameLink(ctx, n.ID, args[1])
		default:
			return fmt.Errorf("cannot rename a %s", kindLabel(n))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Renamed %s %q\n", green("✓"), kindLabel(n), n.Title)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <link> <title> <url>",
	Short: "Change a link's title and url",
	Args:  cobra.ExactArgs(3),
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
		if n.Kind != model.KindLink {
			return fmt.Errorf("%q is a %s, not a link", n.Title, kindLabel(n))
		}

		if err := sess.store.EditLink(ctx, n.ID, args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s\n", green("✓"), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd, editCmd)
}
