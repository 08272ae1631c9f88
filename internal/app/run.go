package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/executor"
	"github.com/vk/gridagentgo/internal/framework"
	"github.com/vk/gridagentgo/internal/identity"
	"github.com/vk/gridagentgo/internal/model"
	"github.com/vk/gridagentgo/internal/transport"
)

// RunExecutor runs the agent in executor mode: connect to the manager,
// register, and serve the inbound event stream until the manager closes
// the connection.
func (a *App) RunExecutor(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Executor role starting.", "master", appConfig.MasterAddr)

	if appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(appConfig.HealthcheckPort)
	}

	info := identity.ExecutorInfo(a.model.Agent.Name)
	driver := transport.NewSocketIODriver(appConfig.MasterAddr, info)
	exec := executor.New(info, a.registry, a.maxTasks(appConfig))

	if err := exec.Run(ctx, driver); err != nil {
		return fmt.Errorf("executor role failed: %w", err)
	}
	return nil
}

// RunFramework runs the agent in framework mode: register with the
// manager, submit the configured task batch, and wait until every task
// reports a terminal status.
func (a *App) RunFramework(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Framework role starting.", "master", appConfig.MasterAddr, "tasks", appConfig.TaskCount)

	sched := framework.New(appConfig.TaskCount, model.CommandInfo{
		Value: appConfig.TaskCommand,
		Shell: appConfig.TaskShell,
	})

	registration := transport.FrameworkRegistration{
		FrameworkID: sched.FrameworkID(),
		Executor:    identity.CommandDescriptor(appConfig.MasterAddr, sched.FrameworkID(), appConfig.Workdir),
	}
	conn := transport.NewSocketIOFrameworkConn(appConfig.MasterAddr, registration)

	if err := conn.Start(ctx); err != nil {
		return fmt.Errorf("framework role failed to connect: %w", err)
	}
	defer conn.Close()

	// The manager routes tasks to an executor it spawned; the submitted
	// descriptors leave the executor id for the manager to fill in.
	if err := sched.Run(ctx, conn, model.ID{}); err != nil {
		return fmt.Errorf("framework role failed: %w", err)
	}
	return nil
}

// RunLocal runs framework and executor in one process, joined by the
// in-memory pipe. Useful as a demo and for end-to-end testing without a
// manager.
func (a *App) RunLocal(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Local role starting.", "tasks", appConfig.TaskCount)

	info := identity.ExecutorInfo(a.model.Agent.Name)
	pipe := transport.NewPipe(16)
	exec := executor.New(info, a.registry, a.maxTasks(appConfig))

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- exec.Run(ctx, pipe.Driver())
	}()

	// Play the manager's part of the handshake.
	if err := pipe.SendEvent(model.Event{Type: model.EventRegistered, ExecutorInfo: &info}); err != nil {
		return fmt.Errorf("local role failed to register executor: %w", err)
	}

	sched := framework.New(appConfig.TaskCount, model.CommandInfo{
		Value: appConfig.TaskCommand,
		Shell: appConfig.TaskShell,
	})
	schedErr := sched.Run(ctx, pipe, info.ExecutorID)

	if err := pipe.SendEvent(model.Event{Type: model.EventShutdown}); err != nil {
		a.logger.Warn("Could not deliver shutdown event.", "error", err)
	}
	pipe.Close()
	exec.Wait()

	if err := errors.Join(schedErr, <-loopErr); err != nil {
		return fmt.Errorf("local role failed: %w", err)
	}
	a.logger.Info("Local run complete.", "tasks", appConfig.TaskCount)
	return nil
}
