package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	api "github.com/oshokin/alarm-agenda/internal/api/mcp/alarm"
	"github.com/oshokin/alarm-agenda/internal/config"
	domain "github.com/oshokin/alarm-agenda/internal/domain/alarm"
	"github.com/oshokin/alarm-agenda/internal/logger"
	repository "github.com/oshokin/alarm-agenda/internal/repository/agenda"
	"github.com/oshokin/alarm-agenda/internal/version"
)

// Name identifies the server to MCP hosts.
const Name = "alarm_server"

// Options controls the alarm-agenda process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// StateFile overrides the agenda store path from the settings.
	StateFile string
	// LogLevel overrides the log level from the settings.
	LogLevel string
	// Stdin and Stdout carry the MCP stream; nil means the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	// Clock overrides the system clock, mostly for tests.
	Clock domain.Clock
}

// errUnknownLogLevel is returned for a log level ParseLogLevel does not know.
var errUnknownLogLevel = errors.New("unknown log level")

// Run serves the alarm tools over stdio and blocks until the context is
// canceled or the input stream is closed.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-agenda")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Command line options win over the settings file.
	if opts.StateFile != "" {
		settings.StateFile = opts.StateFile
	}

	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(settings.LogLevel)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	logger.SetLevel(level)

	repo, err := newRepository(settings)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Errorf(ctx, "Failed to close agenda store: %v", closeErr)
		}
	}()

	svc, err := newService(ctx, repo, opts.Clock)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	if settings.HealthAddress != "" {
		stopHealth, healthErr := startHealth(ctx, settings.HealthAddress, svc)
		if healthErr != nil {
			return fmt.Errorf("start health endpoint: %w", healthErr)
		}

		defer stopHealth()
	}

	mcpServer := newMCPServer(svc)

	stdio := mcpserver.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(logger.StdLogger(ctx))

	stdin, stdout := opts.Stdin, opts.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	logger.InfoKV(ctx, "Alarm server listening on stdio",
		"storage", settings.Storage,
		"state_file", settings.StateFile,
		"version", version.Short(),
	)

	err = stdio.Listen(ctx, stdin, stdout)

	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		logger.Info(ctx, "Alarm server stopped")

		return nil
	default:
		return fmt.Errorf("serve stdio: %w", err)
	}
}

// newMCPServer builds the MCP server with every alarm tool and prompt registered.
func newMCPServer(svc api.Service) *mcpserver.MCPServer {
	mcpServer := mcpserver.NewMCPServer(
		Name,
		version.Short(),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithPromptCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(api.Instructions),
	)

	api.NewServer(svc).Register(mcpServer)

	return mcpServer
}

// newRepository picks the agenda backend named in the settings.
//
//nolint:ireturn // Callers only need the Repository behaviour.
func newRepository(settings *config.Config) (repository.Repository, error) {
	switch settings.Storage {
	case config.StorageSQLite:
		return repository.NewSQLiteRepository(settings.StateFile), nil
	case config.StorageJSON, "":
		return repository.NewFileRepository(settings.StateFile), nil
	default:
		return nil, fmt.Errorf("unsupported storage %q", settings.Storage)
	}
}
