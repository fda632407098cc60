package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/model"
)

var showIDs bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the bookmark tree",
	Long: `Print every folder, link and widget. The active folder is marked.

Example:
  hive tree --ids`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		sess, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		tree, err := sess.load(ctx, cmd.ErrOrStderr(), true)
		if err != nil {
			return err
		}
		if tree.Len() == 0 {
			fmt.Fprintln(out, faint("No bookmarks yet. Add a folder with: hive add folder <title>"))
			return nil
		}

		active := ""
		if id := sess.store.State().ActiveFolderID; id != nil {
			active = *id
		}
		printTree(out, tree, active)
		return nil
	},
}

func printTree(out io.Writer, tree *model.Tree, active string) {
	tree.Walk(func(n model.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		id := ""
		if showIDs {
			id = faint(n.ID) + " "
		}

		switch n.Kind {
		case model.KindFolder:
			mark := " "
			if n.ID == active {
				mark = green("●")
			}
			fmt.Fprintf(out, "%s%s %s%s/ %s\n", indent, mark, id, honey(n.Title), faint(fmt.Sprintf("(%d)", len(tree.Children(n.ID)))))
		case model.KindWidget:
			fmt.Fprintf(out, "%s  %s%s %s\n", indent, id, n.Title, faint("["+n.WidgetType+"]"))
		default:
			fmt.Fprintf(out, "%s  %s%s  %s\n", indent, id, n.Title, faint(n.URL))
		}
		return true
	})
}

func init() {
	treeCmd.Flags().BoolVar(&showIDs, "ids", false, "show node ids")
	rootCmd.AddCommand(treeCmd)
}
