package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/nikbrunner/hive/internal/cache"
	"github.com/nikbrunner/hive/internal/config"
	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/remote"
	"github.com/nikbrunner/hive/internal/store"
)

var (
	errNoMatch   = errors.New("no match")
	errAmbiguous = errors.New("ambiguous reference")
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	faint  = color.New(color.FgHiBlack).SprintFunc()
	honey  = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// session wires config, logger, cache, backend and store for one command.
type session struct {
	logger  *slog.Logger
	cache   *cache.Cache
	store   *store.Store
	logFile *os.File
}

// openSession builds the store described by cfg. The dashboard logs to the
// configured file; other commands log warnings to stderr.
func openSession(ctx context.Context, dashboard bool) (*session, error) {
	sess := &session{}

	logging := cfg.Logging
	var out io.Writer = os.Stderr
	if dashboard {
		f, err := config.OpenLogFile(logging.File)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		sess.logFile = f
		out = f
	} else if logging.Level == "info" || logging.Level == "" {
		logging.Level = "warn"
	}
	if verbose {
		logging.Level = "debug"
	}
	sess.logger = config.SetupLogger(logging, out)

	c, err := cache.Open(cache.Options{Backend: cfg.Cache.Backend, Path: cfg.Cache.Path}, sess.logger)
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.cache = c

	var backend store.Backend
	if cfg.Backend.Remote() {
		client, err := remote.NewClient(remote.Options{
			BaseURL:    cfg.Backend.BaseURL,
			Token:      cfg.Backend.Token,
			Timeout:    cfg.Backend.Timeout,
			MaxRetries: cfg.Backend.MaxRetries,
			Logger:     sess.logger,
		})
		if err != nil {
			sess.Close()
			return nil, err
		}
		backend = client
	} else {
		backend = remote.NewLocal(cfg.Backend.LocalPath)
	}

	sess.store = store.New(store.Params{Backend: backend, Cache: c, Logger: sess.logger})
	sess.logger.Debug("session opened", "remote", cfg.Backend.Remote(), "cache", cfg.Cache.Backend)
	return sess, nil
}

// load fetches the tree. With allowStale a failed fetch falls back to the
// cached tree, if there is one.
func (s *session) load(ctx context.Context, w io.Writer, allowStale bool) (*model.Tree, error) {
	err := s.store.Load(ctx)
	tree := s.store.State().Tree
	if err == nil {
		return tree, nil
	}
	if !allowStale || tree.Len() == 0 {
		return nil, err
	}
	fmt.Fprintf(w, "%s %v, showing cached bookmarks\n", yellow("!"), err)
	return tree, nil
}

// Close releases the store, cache and log file.
func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("closing cache", "error", err)
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// resolveNode finds a node by id, or else by case-insensitive title.
func resolveNode(tree *model.Tree, ref string) (model.Node, error) {
	return resolve(tree, ref, func(model.Node) bool { return true })
}

// resolveFolder is resolveNode restricted to folders.
func resolveFolder(tree *model.Tree, ref string) (model.Node, error) {
	n, err := resolve(tree, ref, model.Node.IsFolder)
	if err != nil {
		return model.Node{}, fmt.Errorf("folder: %w", err)
	}
	return n, nil
}

func resolve(tree *model.Tree, ref string, keep func(model.Node) bool) (model.Node, error) {
	if n, ok := tree.Find(ref); ok && keep(n) {
		return n, nil
	}

	var matches []model.Node
	tree.Walk(func(n model.Node, _ int) bool {
		if keep(n) && strings.EqualFold(n.Title, ref) {
			matches = append(matches, n)
		}
		return true
	})

	switch len(matches) {
	case 0:
		return model.Node{}, fmt.Errorf("%w for %q", errNoMatch, ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return model.Node{}, fmt.Errorf("%w: %q matches %s; use an id", errAmbiguous, ref, strings.Join(ids, ", "))
	}
}

func kindLabel(n model.Node) string {
	switch n.Kind {
	case model.KindFolder:
		return "folder"
	case model.KindWidget:
		return "widget"
	default:
		return "link"
	}
}
