package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/hive/internal/culler"
)

var (
	checkConcurrency int
	checkTimeout     time.Duration
	checkPrune       bool
	checkYes         bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Find dead links",
	Long: `Request every link and report the ones that are gone (404/410) or
unreachable. 404s on the configured exclude_domains are treated as private
pages and count as healthy.

With --prune --yes the dead links are deleted. Unreachable links are never
deleted, since the failure may be on this side.

Examples:
  hive check
  hive check --prune --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		errOut := cmd.ErrOrStderr()

		sess, err := openSession(ctx, false)
		if err != nil {
			return err
		}
		defer sess.Close()

		tree, err := sess.load(ctx, errOut, !checkPrune)
		if err != nil {
			return err
		}

		opts := culler.Options{
			Concurrency:    cfg.Culler.Concurrency,
			Timeout:        cfg.Culler.Timeout,
			ExcludeDomains: cfg.Culler.ExcludeDomains,
			Logger:         sess.logger,
		}
		if cmd.Flags().Changed("concurrency") {
			opts.Concurrency = checkConcurrency
		}
		if cmd.Flags().Changed("timeout") {
			opts.Timeout = checkTimeout
		}

		// Progress only makes sense on a terminal
		var progress culler.ProgressFunc
		if f, ok := errOut.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			progress = func(done, total int) {
				fmt.Fprintf(errOut, "\rChecking %d/%d", done, total)
				if done == total {
					fmt.Fprintln(errOut)
				}
			}
		}

		results := culler.Check(ctx, tree.Links(), opts, progress)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var dead []culler.Result
		for _, r := range results {
			switch r.Status {
			case culler.Dead:
				dead = append(dead, r)
				fmt.Fprintf(out, "%s %d  %s  %s\n", red("✗ dead"), r.StatusCode, r.Node.Title, faint(r.Node.URL))
			case culler.Unreachable:
				fmt.Fprintf(out, "%s  %s  %s %s\n", yellow("? unreachable"), r.Node.Title, faint(r.Node.URL), faint("("+r.Error+")"))
			}
		}

		counts := culler.Summarize(results)
		fmt.Fprintf(out, "%d links: %s, %s, %s\n",
			len(results),
			green(fmt.Sprintf("%d %s", counts[culler.Healthy], culler.Healthy)),
			red(fmt.Sprintf("%d %s", counts[culler.Dead], culler.Dead)),
			yellow(fmt.Sprintf("%d %s", counts[culler.Unreachable], culler.Unreachable)),
		)

		if !checkPrune || len(dead) == 0 {
			return nil
		}
		if !checkYes {
			return fmt.Errorf("would delete %d dead links; pass --yes to confirm", len(dead))
		}
		for _, r := range dead {
			if err := sess.store.DeleteNode(ctx, r.Node.ID); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s Deleted %d dead links\n", green("✓"), len(dead))
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", culler.DefaultConcurrency, "parallel requests")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", culler.DefaultTimeout, "per request timeout")
	checkCmd.Flags().BoolVar(&checkPrune, "prune", false, "delete dead links")
	checkCmd.Flags().BoolVarP(&checkYes, "yes", "y", false, "confirm --prune")
	rootCmd.AddCommand(checkCmd)
}
