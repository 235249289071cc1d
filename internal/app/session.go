package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/blackwell-systems/pathnotes/internal/config"
	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/logging"
	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/blackwell-systems/pathnotes/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// session bundles what a storage-backed command needs.
type session struct {
	cfg    *config.Config
	db     *store.DB
	svc    *hierarchy.Service
	logger zerolog.Logger
}

// loadConfig loads the config and applies the global output flags.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}

	output.ConfigureColor(cfg.Output.Color && !flagNoColor)

	logger := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Verbose: flagVerbose,
		Output:  cmd.ErrOrStderr(),
		Console: true,
	})
	return cfg, logger, nil
}

// openSession loads config and opens the database. Callers must Close it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug().Str("db", cfg.DBPath).Msg("database opened")

	return &session{
		cfg:    cfg,
		db:     db,
		svc:    hierarchy.New(db, cfg.PathTag, logger),
		logger: logger,
	}, nil
}

// Close releases the database.
func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("closing database")
	}
}

// root finds or creates the root note.
func (s *session) root(ctx context.Context) (*hierarchy.Note, error) {
	return s.svc.EnsureRoot(ctx, s.cfg.RootName)
}

// deviceName returns the current device: the config override when set,
// otherwise the stored device name.
func (s *session) deviceName(ctx context.Context) (string, error) {
	if s.cfg.Device != "" {
		return s.cfg.Device, nil
	}
	name, err := s.db.DeviceName(ctx)
	if err != nil {
		return "", fmt.Errorf("reading device name: %w", err)
	}
	if name == "" {
		return "", hierarchy.ErrNoDevice
	}
	return name, nil
}

// device finds or creates the note for the named device, or the current
// device when name is empty.
func (s *session) device(ctx context.Context, name string) (*hierarchy.Note, string, error) {
	if name == "" {
		var err error
		if name, err = s.deviceName(ctx); err != nil {
			return nil, "", err
		}
	}
	root, err := s.root(ctx)
	if err != nil {
		return nil, "", err
	}
	device, err := s.svc.EnsureDevice(ctx, root, name)
	if err != nil {
		return nil, "", err
	}
	return device, name, nil
}

// links reports whether new path notes on device get a file URL.
func (s *session) links(ctx context.Context, device string) (bool, error) {
	return s.db.DeviceLinks(ctx, device)
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
