package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a folder, link or widget",
}

var addFolderCmd = &cobra.Command{
	Use:   "folder <title>",
	Short: "Add a top-level folder and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sess, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		if _, err := sess.load(ctx, cmd.ErrOrStderr(), false); err != nil {
			return err
		}
		n, err := sess.store.CreateFolder(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Created folder %s %s\n", green("✓"), n.Title, faint(n.ID))
		return nil
	},
}

var addLinkCmd = &cobra.Command{
	Use:   "link <folder> <title> <url>",
	Short: "Add a link to a folder",
	Long: `Add a link to a folder, given by id or title. A url without a scheme
gets https://.

Example:
  hive add link Dev "Go" go.dev`,
	Args: cobra.ExactArgs(3),
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
		folder, err := resolveFolder(tree, args[0])
		if err != nil {
			return err
		}

		n, err := sess.store.CreateLink(ctx, args[1], args[2], folder.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s to %s\n", green("✓"), n.Title, faint(n.URL), folder.Title)
		return nil
	},
}

var addWidgetCmd = &cobra.Command{
	Use:   "widget <folder> <title> [type]",
	Short: "Add a widget to a folder",
	Long: fmt.Sprintf(`Add a widget to a folder. The type defaults to %s.

Example:
  hive add widget Home "Trains" LRT`, model.DefaultWidgetType),
	Args: cobra.RangeArgs(2, 3),
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
		folder, err := resolveFolder(tree, args[0])
		if err != nil {
			return err
		}

		widgetType := ""
		if len(args) == 3 {
			widgetType = args[2]
		}
		n, err := sess.store.CreateWidget(ctx, args[1], widgetType, folder.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added widget %s %s to %s\n", green("✓"), n.Title, faint("["+n.WidgetType+"]"), folder.Title)
		return nil
	},
}

func init() {
	addCmd.AddCommand(addFolderCmd, addLinkCmd, addWidgetCmd)
	rootCmd.AddCommand(addCmd)
}
