// Package cli implements the smartfarm command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/internal/logger"
	"github.com/mesh-intelligence/smartfarm/internal/paths"
	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// dotEnvFile is loaded from the working directory before directories are
// resolved. Variables already set in the environment win.
const dotEnvFile = ".env"

// app holds global flag values and per-invocation state shared by all
// subcommands.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
	yes       bool

	cfg *viper.Viper
	log *zap.Logger
}

// NewRootCmd creates the top-level "smartfarm" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "smartfarm",
		Short: "Record keeping for an agricultural cooperative",
		Long: "smartfarm tracks farmers, buyers, product types, sales, farming activities,\n" +
			"cooperatives and memberships in a local SQLite database.",
		Args:              usageArgs(cobra.NoArgs),
		RunE:              showHelp,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.jsonMode, "json", false, "output as JSON")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVarP(&a.yes, "yes", "y", false, "do not ask for confirmation")

	root.AddCommand(
		a.newVersionCmd(),
		a.newInitCmd(),
		a.newSeedCmd(),
		a.newExportCmd(),
		a.newImportCmd(),
		a.newActivityCmd(),
		a.newFarmerCmd(),
		a.newBuyerCmd(),
		a.newProductCmd(),
		a.newSaleCmd(),
		a.newCooperativeCmd(),
		a.newDashboardCmd(),
		a.newMembershipCmd(),
	)
	return root
}

// Execute runs the root command, reports any error on stderr and returns
// the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "smartfarm:", err)
	}
	return exitCode(err)
}

// exitCode maps an error to 0, 1 (caller input) or 2 (everything else).
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ue usageError
	if errors.As(err, &ue) || types.IsUserError(err) {
		return exitUserError
	}
	return exitSysError
}

// setup loads .env and config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", dotEnvFile, err)
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	log, err := logger.New(logger.Config{Level: level, Environment: cfg.GetString(cfgKeyLogEnv)})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.log = log.With(zap.String("command", cmd.CommandPath()))
	return nil
}

// resolveDataDir applies --data-dir > SMARTFARM_DATA_DIR > config.yaml data_dir
// > $(CWD)/.smartfarm.
func (a *app) resolveDataDir() (string, error) {
	configured := ""
	if a.cfg != nil {
		configured = a.cfg.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(a.dataDir, configured)
}

// withStore attaches a backend for the duration of fn.
func (a *app) withStore(fn func(b *sqlite.Backend) error) error {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	backend := sqlite.NewBackend(sqlite.WithLogger(a.log))
	if err := backend.Attach(types.Config{Backend: a.backendName(), DataDir: dataDir}); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer func() {
		if err := backend.Detach(); err != nil {
			a.log.Error("detach failed", zap.Error(err))
		}
	}()
	return fn(backend)
}

func (a *app) backendName() string {
	if a.cfg == nil {
		return types.BackendSQLite
	}
	return a.cfg.GetString(cfgKeyBackend)
}

// group builds a parent command that only dispatches to its children.
func group(use, short string, children ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  usageArgs(cobra.NoArgs),
		RunE:  showHelp,
	}
	cmd.AddCommand(children...)
	return cmd
}

func showHelp(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// usageError marks malformed command lines.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// usageArgs wraps a positional-argument check so its failures count as
// usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
