package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs name with args and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir is Execute with the working directory set to dir.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// Option configures an Executor.
type Option func(*implExecutor)

// WithEnv appends KEY=VALUE pairs to the environment of every command.
func WithEnv(env ...string) Option {
	return func(e *implExecutor) {
		e.env = append(e.env, env...)
	}
}
