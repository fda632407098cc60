package cmd

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/picker"
	"github.com/nikbrunner/hive/internal/search"
	"github.com/nikbrunner/hive/internal/tui"
)

var (
	openPrint bool
	openFirst bool
)

var openCmd = &cobra.Command{
	Use:   "open <query>",
	Short: "Fuzzy find a link and open it",
	Long: `Fuzzy match link titles. A single match opens directly; several
matches open a picker.

Examples:
  hive open github
  hive open "hacker news" --print`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		sess, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		tree, err := sess.load(ctx, cmd.ErrOrStderr(), true)
		if err != nil {
			return err
		}

		results := search.Links(tree, query)
		if len(results) == 0 {
			return fmt.Errorf("%w for %q", errNoMatch, query)
		}

		link := results[0].Node
		if len(results) > 1 && !openFirst {
			selected, ok, err := pick(tree, query)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			link = selected
		}

		if openPrint {
			fmt.Fprintln(cmd.OutOrStdout(), link.URL)
			return nil
		}
		if err := tui.OpenBrowser(link.URL); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Opened %s %s\n", green("✓"), link.Title, faint(link.URL))
		return nil
	},
}

// pick runs the picker and returns the chosen link.
func pick(tree *model.Tree, query string) (model.Node, bool, error) {
	final, err := tea.NewProgram(picker.New(tree, query)).Run()
	if err != nil {
		return model.Node{}, false, fmt.Errorf("running picker: %w", err)
	}
	p, ok := final.(picker.Picker)
	if !ok {
		return model.Node{}, false, errors.New("unexpected picker model")
	}
	if p.Cancelled() {
		return model.Node{}, false, nil
	}
	n, ok := p.Selected()
	return n, ok, nil
}

func init() {
	openCmd.Flags().BoolVarP(&openPrint, "print", "p", false, "print the url instead of opening it")
	openCmd.Flags().BoolVar(&openFirst, "first", false, "take the best match without asking")
	rootCmd.AddCommand(openCmd)
}
