// Package process spawns and supervises the child described by a launch
// spec. Failure to start (for example a configured interpreter path that
// does not exist) surfaces here, not in the spec builder.
package process

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"puppet-launcher/internal/common"
	"puppet-launcher/internal/launch"
)

// ShutdownTimeout bounds how long Stop waits for a graceful exit before
// force-killing the child.
const ShutdownTimeout = 5 * time.Second

// Process holds a running server child and its pipe ends. Pipe fields are
// nil when the spec requested inherited stdio.
type Process struct {
	Cmd    *exec.Cmd
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	Stderr io.ReadCloser
	StopCh chan struct{}
	Name   string
}

// Runner turns launch specs into running processes.
type Runner struct{}

// NewRunner creates a process runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Start spawns the child described by spec. name labels the child in logs.
func (r *Runner) Start(spec launch.Spec, name string) (*Process, error) {
	cmd := buildCmd(spec)
	cmd.Env = flattenEnv(spec.Options.Env)

	if wd, err := os.Getwd(); err == nil {
		cmd.Dir = wd
	}

	proc := &Process{
		Cmd:    cmd,
		StopCh: make(chan struct{}),
		Name:   name,
	}

	switch spec.Options.Stdio {
	case launch.StdioInherit:
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	default:
		var err error
		proc.Stdin, err = cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
		}
		proc.Stdout, err = cmd.StdoutPipe()
		if err != nil {
			proc.closePipes()
			return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
		}
		proc.Stderr, err = cmd.StderrPipe()
		if err != nil {
			proc.closePipes()
			return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
		}
	}

	if err := cmd.Start(); err != nil {
		proc.closePipes()
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}

	common.ProcessLogger.Info("Started %s: PID %d", name, cmd.Process.Pid)
	return proc, nil
}

// ForwardStdio bridges the piped child streams to the parent's, used by the
// CLI when the launcher fronts a STDIO language server. Blocks until the
// child's output streams close.
func (p *Process) ForwardStdio() {
	if p.Stdin == nil {
		return
	}

	go func() {
		_, _ = io.Copy(p.Stdin, os.Stdin)
		p.Stdin.Close()
	}()

	outDone := make(chan struct{})
	go func() {
		_, _ = io.Copy(os.Stdout, p.Stdout)
		close(outDone)
	}()
	_, _ = io.Copy(os.Stderr, p.Stderr)
	<-outDone
}

// Wait blocks until the child exits and returns its exit error, if any.
func (p *Process) Wait() error {
	err := p.Cmd.Wait()

	select {
	case <-p.StopCh:
	default:
		close(p.StopCh)
	}

	if err != nil {
		common.ProcessLogger.Warn("%s exited: %v", p.Name, err)
	} else {
		common.ProcessLogger.Info("%s exited normally", p.Name)
	}
	return err
}

// Stop asks the child to exit and force-kills it after ShutdownTimeout.
func (p *Process) Stop() error {
	if p == nil || p.Cmd == nil || p.Cmd.Process == nil {
		return nil
	}

	select {
	case <-p.StopCh:
		// Already stopped.
		return nil
	default:
		close(p.StopCh)
	}

	// Closing stdin signals a STDIO server to shut down.
	if p.Stdin != nil {
		p.Stdin.Close()
	}

	done := make(chan error, 1)
	go func() {
		done <- p.Cmd.Wait()
	}()

	select {
	case <-done:
	case <-time.After(ShutdownTimeout):
		common.ProcessLogger.Warn("%s did not exit within %v, force killing", p.Name, ShutdownTimeout)
		if err := p.Cmd.Process.Kill(); err != nil {
			common.ProcessLogger.Error("Failed to kill %s: %v", p.Name, err)
		}
		<-done
	}

	p.closePipes()
	return nil
}

func (p *Process) closePipes() {
	if p.Stdin != nil {
		p.Stdin.Close()
		p.Stdin = nil
	}
	if p.Stdout != nil {
		p.Stdout.Close()
		p.Stdout = nil
	}
	if p.Stderr != nil {
		p.Stderr.Close()
		p.Stderr = nil
	}
}

// buildCmd maps a spec onto an exec.Cmd. When the spec requests shell
// interpretation the whole command line is handed to sh, matching how the
// bare interpreter name relies on shell-level PATH resolution.
func buildCmd(spec launch.Spec) *exec.Cmd {
	if spec.Options.Shell {
		return exec.Command("sh", "-c", shellCommandLine(spec.Command, spec.Args))
	}
	return exec.Command(spec.Command, spec.Args...)
}

// shellCommandLine renders a command and arguments as one sh -c string with
// each word single-quoted.
func shellCommandLine(command string, args []string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, shellQuote(command))
	for _, arg := range args {
		words = append(words, shellQuote(arg))
	}
	return strings.Join(words, " ")
}

func shellQuote(word string) string {
	if word == "" {
		return "''"
	}
	if !strings.ContainsAny(word, " \t\n'\"\\$&|;<>()*?[]#~%!{}`") {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}

// flattenEnv renders the env mapping as the KEY=VALUE slice exec.Cmd
// expects, sorted for deterministic spawns.
func flattenEnv(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
