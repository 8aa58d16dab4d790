package core

import (
	"fmt"
	"path/filepath"
	"time"

	"milaunch/internal/domain"
	"milaunch/internal/events"
	"milaunch/internal/games"
	"milaunch/internal/storage/config"
	"milaunch/internal/storage/db"

	"github.com/rs/zerolog"
)

// DefaultHookTimeout bounds waited-for launch hook commands.
const DefaultHookTimeout = 60 * time.Second

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir string // Directory for configuration files
	DataDir   string // Directory for database, backups and logs
	AppRoot   string // Root for relative importer install folders
}

// Service is the main orchestrator for importer management operations
type Service struct {
	config    *config.Config
	importers map[string]*domain.ImporterConfig
	registry  *games.Registry
	db        *db.DB
	emitter   events.Emitter
	hooks     *HookRunner
	log       zerolog.Logger

	configDir   string
	dataDir     string
	appRoot     string
	backupsRoot string
}

// NewService loads configuration and opens the database
func NewService(cfg ServiceConfig, emitter events.Emitter, logger zerolog.Logger) (*Service, error) {
	appConfig, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}
	importers, err := config.LoadImporters(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}
	registry, err := games.NewRegistry(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}
	database, err := db.New(filepath.Join(cfg.DataDir, "milaunch.db"))
	if err != nil {
		return nil, err
	}

	backupsRoot := appConfig.BackupsPath
	if backupsRoot == "" {
		backupsRoot = filepath.Join(cfg.DataDir, "backups")
	}
	appRoot := cfg.AppRoot
	if appRoot == "" {
		appRoot = cfg.DataDir
	}

	return &Service{
		config:      appConfig,
		importers:   importers,
		registry:    registry,
		db:          database,
		emitter:     emitter,
		hooks:       NewHookRunner(DefaultHookTimeout),
		log:         logger,
		configDir:   cfg.ConfigDir,
		dataDir:     cfg.DataDir,
		appRoot:     appRoot,
		backupsRoot: backupsRoot,
	}, nil
}

// Close releases the database connection
func (s *Service) Close() error {
	return s.db.Close()
}

// Config returns the loaded application configuration
func (s *Service) Config() *config.Config {
	return s.config
}

// DB exposes the ledger for status reporting
func (s *Service) DB() *db.DB {
	return s.db
}

// AppRoot returns the root for relative importer folders
func (s *Service) AppRoot() string {
	return s.appRoot
}

// Importer resolves an importer config by name, falling back to the
// configured active importer when name is empty.
func (s *Service) Importer(name string) (*domain.ImporterConfig, error) {
	if name == "" {
		name = s.config.ActiveImporter
	}
	if name == "" {
		return nil, fmt.Errorf("no importer specified and no active importer configured")
	}
	cfg, ok := s.importers[name]
	if !ok {
		return nil, fmt.Errorf("importer %q is not configured", name)
	}
	return cfg, nil
}

// Integration returns the game integration for an importer config
func (s *Service) Integration(cfg *domain.ImporterConfig) (games.Integration, error) {
	return s.registry.Get(cfg.PackageName)
}

// Launcher builds the launch sequence for the named importer. The
// returned launcher mutates cfg in place and must not be shared across
// concurrent launch attempts.
func (s *Service) Launcher(name string) (*Launcher, error) {
	cfg, err := s.Importer(name)
	if err != nil {
		return nil, err
	}
	integ, err := s.Integration(cfg)
	if err != nil {
		return nil, err
	}
	return NewLauncher(cfg, s.config.Migoto, integ, s.emitter, LauncherOptions{
		AppRoot:   s.appRoot,
		ConfigDir: s.configDir,
		DB:        s.db,
		Hooks:     s.hooks,
		Logger:    s.log,
	}), nil
}

// Installer builds the install sequence sharing the service's vault root
func (s *Service) Installer() *Installer {
	vault := NewVault(s.backupsRoot, s.db)
	return NewInstaller(vault, s.emitter, s.appRoot, s.log)
}

// WarmUpActive runs the best-effort game path warm-up for the active
// importer, matching package load behavior. Errors are discarded.
func (s *Service) WarmUpActive() {
	launcher, err := s.Launcher("")
	if err != nil {
		return
	}
	launcher.WarmUp()
}
