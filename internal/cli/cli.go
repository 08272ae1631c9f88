// Package cli translates command-line arguments into app configuration
// and routes each role to its entry point.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/vk/gridagentgo/internal/app"
)

// App name/usage constants.
const (
	AppName  = "gridagent"
	AppUsage = "agent-side executor for a cluster resource manager"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// NewApp builds the CLI application with the executor, framework, and
// local role commands.
func NewApp(outW io.Writer) *cli.App {
	cliApp := cli.NewApp()
	cliApp.Name = AppName
	cliApp.Usage = AppUsage
	cliApp.Writer = outW
	cliApp.HideHelpCommand = true
	cliApp.CommandNotFound = func(ctx *cli.Context, command string) {
		fmt.Fprintf(outW, "unknown command - %v\n\n", command)
		cli.ShowAppHelp(ctx)
	}

	cliApp.Flags = []cli.Flag{
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "logging level: 'debug', 'info', 'warn', or 'error'"},
		&cli.StringFlag{Name: "log-format", Value: "text", Usage: "log output format: 'text' or 'json'"},
		&cli.StringFlag{Name: "config", Usage: "path to an HCL agent config file"},
	}

	cliApp.Commands = []*cli.Command{
		executorCommand(outW),
		frameworkCommand(outW),
		localCommand(outW),
	}

	return cliApp
}

func executorCommand(outW io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "executor",
		Usage: "run the executor role against a cluster manager",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "master", Usage: "manager URL, e.g. http://master:5050/socket.io"},
			&cli.IntFlag{Name: "healthcheck-port", Usage: "port for the HTTP health endpoint; 0 disables it"},
			&cli.IntFlag{Name: "max-tasks", Usage: "bound on concurrently running tasks; 0 uses the config value"},
		},
		Action: func(ctx *cli.Context) error {
			appConfig, err := buildConfig(ctx, true)
			if err != nil {
				return err
			}
			agentApp := app.New(outW, appConfig)
			return agentApp.RunExecutor(ctx.Context, appConfig)
		},
	}
}

func frameworkCommand(outW io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "framework",
		Usage: "register a framework and submit a batch of tasks",
		Flags: append(taskFlags(),
			&cli.StringFlag{Name: "master", Usage: "manager URL, e.g. http://master:5050/socket.io"},
			&cli.StringFlag{Name: "workdir", Value: ".", Usage: "directory the manager relaunches executors from"},
		),
		Action: func(ctx *cli.Context) error {
			appConfig, err := buildConfig(ctx, true)
			if err != nil {
				return err
			}
			agentApp := app.New(outW, appConfig)
			return agentApp.RunFramework(ctx.Context, appConfig)
		},
	}
}

func localCommand(outW io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "local",
		Usage: "run framework and executor in one process, no manager needed",
		Flags: append(taskFlags(),
			&cli.IntFlag{Name: "max-tasks", Usage: "bound on concurrently running tasks; 0 uses the config value"},
		),
		Action: func(ctx *cli.Context) error {
			appConfig, err := buildConfig(ctx, false)
			if err != nil {
				return err
			}
			agentApp := app.New(outW, appConfig)
			return agentApp.RunLocal(ctx.Context, appConfig)
		},
	}
}

func taskFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "tasks", Value: 5, Usage: "number of tasks to submit"},
		&cli.StringFlag{Name: "command", Usage: "task command; empty runs the placeholder sleeper"},
		&cli.BoolFlag{Name: "shell", Usage: "treat the task command as a shell command line"},
	}
}

// buildConfig validates flags and assembles the app configuration.
func buildConfig(ctx *cli.Context, masterRequired bool) (*app.Config, error) {
	logFormat := strings.ToLower(ctx.String("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(ctx.String("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	master := ctx.String("master")
	if masterRequired && master == "" {
		return nil, &ExitError{Code: 2, Message: "--master is required for this role"}
	}

	tasks := ctx.Int("tasks")
	if ctx.IsSet("tasks") && tasks <= 0 {
		return nil, &ExitError{Code: 2, Message: "--tasks must be positive"}
	}

	return &app.Config{
		MasterAddr:      master,
		Workdir:         ctx.String("workdir"),
		ConfigPath:      ctx.String("config"),
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: ctx.Int("healthcheck-port"),
		MaxTasks:        ctx.Int("max-tasks"),
		TaskCount:       tasks,
		TaskCommand:     ctx.String("command"),
		TaskShell:       ctx.Bool("shell"),
	}, nil
}
