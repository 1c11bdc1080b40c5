package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/confirm"
	"github.com/idilsaglam/shoplist/internal/logging"
	"github.com/idilsaglam/shoplist/internal/shopping"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/store/jsonstore"
	"github.com/idilsaglam/shoplist/internal/store/memstore"
	"github.com/idilsaglam/shoplist/internal/store/sqlitestore"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// Exit codes: 0 ok, 1 runtime error, 2 usage error.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks mistakes in how the command was called.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{fmt.Sprintf(format, a...)} }

// app carries what every subcommand needs. Fields are filled from flags
// and config in PersistentPreRunE.
type app struct {
	in       io.Reader
	out, err io.Writer

	configPath string
	backend    string
	path       string
	key        string
	theme      string
	verbose    bool

	cfg *config.Config
	log *zap.Logger

	kv        store.KV
	confirmer confirm.Confirmer
}

// Options wire the command tree to its surroundings.
type Options struct {
	In       io.Reader
	Out, Err io.Writer
	// KV replaces the configured backend when set.
	KV store.KV
	// Confirmer answers delete dialogs instead of prompting on In.
	Confirmer confirm.Confirmer
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, opt Options) int {
	a := &app{in: opt.In, out: opt.Out, err: opt.Err, kv: opt.KV, confirmer: opt.Confirmer}
	if a.in == nil {
		a.in = os.Stdin
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.err == nil {
		a.err = os.Stderr
	}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.err)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err == nil {
		return exitOK
	}
	ui.Fail(a.err, err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return exitUsage
	}
	return exitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shoplist",
		Short: "shoplist - a tiny shopping list",
		Long: `shoplist keeps a shopping list in a local file (or SQLite database).

Run without a subcommand to open the interactive list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), false)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.shoplist/config.yaml)")
	pf.StringVar(&a.backend, "store", "", "storage backend: json, sqlite, memory")
	pf.StringVar(&a.path, "path", "", "data file path")
	pf.StringVar(&a.key, "key", "", "storage key holding the list")
	pf.StringVar(&a.theme, "theme", "", "theme: classic, neon, mono")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.addCmd(),
		a.lsCmd(),
		a.editCmd(),
		a.toggleCmd(),
		a.rmCmd(),
		a.clearCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.tuiCmd(),
	)
	return root
}

// setup resolves config (flags > env > file > defaults) and the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Store.Backend = a.backend
	}
	if a.path != "" {
		cfg.Store.Path = a.path
	}
	if a.key != "" {
		cfg.Store.Key = a.key
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err.Error()}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	// The interactive list owns the terminal; its logs go to a file.
	out := "stderr"
	if cmd.Name() == "tui" || cmd == cmd.Root() {
		out = cfg.Logging.File
	}
	a.log, err = logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Verbose:    a.verbose,
		OutputPath: out,
	})
	return err
}

// openKV picks the backend. The returned close func is never nil.
func (a *app) openKV() (store.KV, func(), error) {
	if a.kv != nil {
		return a.kv, func() {}, nil
	}
	path := a.cfg.Store.Path
	switch a.cfg.Store.Backend {
	case "memory":
		return memstore.New(), func() {}, nil
	case "sqlite":
		if path == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, nil, fmt.Errorf("getwd: %w", err)
			}
			path = filepath.Join(wd, "shoplist.db")
		}
		db, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				a.log.Warn("close database", zap.Error(err))
			}
		}, nil
	default:
		if path == "" {
			p, err := jsonstore.DefaultPath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		return jsonstore.New(path), func() {}, nil
	}
}

// openStore loads the list. sync makes each mutation wait for its write,
// which one-shot commands need before the process exits.
func (a *app) openStore(ctx context.Context, sync bool) (*shopping.Store, func(), error) {
	kv, closeKV, err := a.openKV()
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	opts := []shopping.Option{
		shopping.WithKey(a.cfg.Store.Key),
		shopping.WithLogger(a.log),
		shopping.WithIDGenerator(shopping.GeneratorFor(a.cfg.IDScheme)),
	}
	if sync {
		opts = append(opts, shopping.WithSync())
	}
	s := shopping.New(kv, opts...)
	s.Load(ctx)
	return s, func() {
		if err := s.Close(context.Background()); err != nil {
			a.log.Warn("flush shopping list", zap.Error(err))
		}
		closeKV()
	}, nil
}

func (a *app) confirmerFor(yes bool) confirm.Confirmer {
	if yes {
		return confirm.Always{}
	}
	if a.confirmer != nil {
		return a.confirmer
	}
	return confirm.Prompt{In: a.in, Out: a.out}
}
