package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/gridagentgo/internal/config"
	"github.com/vk/gridagentgo/internal/registry"
)

// Config holds everything an App instance needs to run a role.
type Config struct {
	// MasterAddr is the cluster manager URL (executor and framework roles).
	MasterAddr string
	// Workdir is the directory the manager should relaunch this executor from.
	Workdir string
	// ConfigPath optionally points at an HCL agent file.
	ConfigPath string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// MaxTasks overrides the configured task-slot bound when positive.
	MaxTasks int

	// TaskCount and TaskCommand shape the batch submitted by the
	// framework and local roles.
	TaskCount   int
	TaskCommand string
	TaskShell   bool
}

// App encapsulates the agent's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
}

// New is the constructor for the application. It configures an isolated
// logger, loads the optional agent config file, and registers all runner
// modules. A failure to load configuration is a fatal startup error and
// panics; the entrypoint recovers it into a clean exit.
func New(outW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	model := config.Default()
	if appConfig.ConfigPath != "" {
		loaded, err := config.Load(appConfig.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		model = loaded
	}
	logger.Debug("Agent configuration loaded.", "path", appConfig.ConfigPath)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All runner modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
	}
}

// Registry returns the application's runner registry. Primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// maxTasks resolves the task-slot bound: CLI override first, then the
// agent config file.
func (a *App) maxTasks(appConfig *Config) int {
	if appConfig.MaxTasks > 0 {
		return appConfig.MaxTasks
	}
	return *a.model.Agent.MaxTasks
}
