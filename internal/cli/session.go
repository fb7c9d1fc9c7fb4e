package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/config"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/interactor"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/logging"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/store"
)

// session is the per-invocation wiring: config, logger, store and
// interactor.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	it     *interactor.Interactor
	out    *OutputFormatter
}

// openSession loads config, applies flag overrides and opens the store.
// The caller must call close.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}

	logger, err := logging.New(cfg.Log, opts.Verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build logger", err)
	}

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	out.VerboseLog("Using database %s", cfg.Database.Path)

	st, err := store.Open(cfg.Database.Path, store.WithBusyTimeout(cfg.Database.BusyTimeout()))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to open database %s", cfg.Database.Path), err)
	}

	it := interactor.New(st,
		interactor.WithLogger(logger),
		interactor.WithSerializedCollections(cfg.Reorder.SerializeCollections),
	)

	return &session{cfg: cfg, logger: logger, store: st, it: it, out: out}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
	s.store.Close()
}

// collection resolves the --collection flag against the configured default.
func (s *session) collection(flag string) string {
	if flag != "" {
		return flag
	}
	return s.cfg.Collection
}
