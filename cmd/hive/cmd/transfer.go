package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/exporter"
	"github.com/nikbrunner/hive/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a browser bookmarks HTML file",
	Long: `Import a Netscape bookmarks file as exported by Chrome, Firefox or
Safari. Every folder becomes a top-level folder (an existing folder with the
same title is reused) and links in nested folders are flattened into it.
Links outside any folder go to "` + importer.UnsortedFolder + `". Links whose
url is already in the folder are skipped.

Example:
  hive import ~/Downloads/bookmarks.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := importer.ParseHTML(f)
		if err != nil {
			return err
		}

		sess, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		if _, err := sess.load(ctx, cmd.ErrOrStderr(), false); err != nil {
			return err
		}

		summary, err := importer.Import(ctx, sess.store, doc, sess.logger)
		if err != nil {
			return fmt.Errorf("import stopped after %d links: %w", summary.Links, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d links, %d new folders", green("✓"), summary.Links, summary.Folders)
		if summary.Skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " %s", faint(fmt.Sprintf("(%d skipped)", summary.Skipped)))
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the tree as a browser bookmarks HTML file",
	Long: `Write the tree as a Netscape bookmarks file that browsers can import.
Widgets are left out.

Example:
  hive export                 # ~/Downloads/hive-export-<date>.html
  hive export bookmarks.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			p, err := exporter.DefaultExportPath()
			if err != nil {
				return err
			}
			path = p
		}

		sess, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		tree, err := sess.load(ctx, cmd.ErrOrStderr(), true)
		if err != nil {
			return err
		}
		if err := exporter.WriteFile(path, tree); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d links to %s\n", green("✓"), len(tree.Links()), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}
