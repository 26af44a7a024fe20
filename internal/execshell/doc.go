// Package execshell is the only place git_garbage_scraper spawns processes.
//
// ShellExecutor wraps a CommandRunner with zap lifecycle logging and typed
// failures (CommandFailedError, CommandExecutionError). OSCommandRunner is the
// os/exec implementation; CommandMessageFormatter turns fsck, cat-file, diff,
// and ls-tree invocations into operator-facing sentences.
package execshell
