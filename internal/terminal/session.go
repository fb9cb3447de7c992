// Session wraps a PTY-backed child process and its Grid. It is
// cross-platform: it uses github.com/aymanbagabas/go-pty, which wraps Unix
// PTYs and Windows ConPTY behind a single interface, so the same binary
// spawns a picker/monitor child on Linux, macOS, and Windows.
package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	gopty "github.com/aymanbagabas/go-pty"
)

// SessionStatus is the lifecycle state of a Session.
type SessionStatus int

const (
	StatusRunning SessionStatus = iota
	StatusExited
	StatusError
)

// killGraceIterations and killGracePoll bound how long Close waits for a
// child to exit after SIGTERM before force-killing it. This is a direct parameter of the original
// implementation's kill sequence (50 * 10ms ≈ 500ms); an implementation
// may tune it.
const (
	killGraceIterations = 50
	killGracePoll       = 10 * time.Millisecond
)

// Session wraps a PTY-backed child process and its virtual Grid. It
// manages the full lifecycle: start, read loop, resize, close.
type Session struct {
	mu sync.Mutex

	Grid   *Grid
	Status SessionStatus

	p   gopty.Pty
	cmd *gopty.Cmd

	done chan struct{}

	// ExitCode is set once the process terminates.
	ExitCode int
}

// NewSession creates a Session with the given grid dimensions but does not
// spawn any process yet — call Start to do that.
func NewSession(rows, cols int) *Session {
	return &Session{
		Grid:   NewGrid(rows, cols),
		Status: StatusRunning,
		done:   make(chan struct{}),
	}
}

// Start launches cmd (run through "sh -lc", matching how the original
// spawns a picker/monitor so shell pipelines like "find . | fzy" work)
// inside a new PTY sized to the Grid's current dimensions.
func (s *Session) Start(cmd string, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, cols := s.Grid.Rows(), s.Grid.Cols()

	p, err := gopty.New()
	if err != nil {
		s.Status = StatusError
		return err
	}
	if err := p.Resize(cols, rows); err != nil {
		p.Close()
		s.Status = StatusError
		return err
	}

	argv := shellCommand(cmd)
	c := p.Command(argv[0], argv[1:]...)
	c.Dir = dir
	c.Env = append(os.Environ(),
		"TERM=xterm-256color",
		fmt.Sprintf("COLUMNS=%d", cols),
		fmt.Sprintf("LINES=%d", rows),
	)

	if err := c.Start(); err != nil {
		p.Close()
		s.Status = StatusError
		return err
	}

	s.p = p
	s.cmd = c

	go s.waitLoop()
	return nil
}

// shellCommand wraps cmd the way the original hot_spawn does
// (execl("/bin/sh", "sh", "-lc", cmd)), so it can run pipelines and
// shell builtins, not just a single executable.
func shellCommand(cmd string) []string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return []string{comspec, "/C", cmd}
		}
		return []string{"cmd.exe", "/C", cmd}
	}
	return []string{"/bin/sh", "-lc", cmd}
}

// Read reads available child output directly from the PTY master. The
// popup controller owns the pump loop and feeds bytes into s.Grid itself
// (so it can also mirror them into the raw-output ring for picker
// harvesting); Session only owns the PTY's lifecycle.
func (s *Session) Read(p []byte) (int, error) {
	s.mu.Lock()
	pty := s.p
	s.mu.Unlock()
	if pty == nil {
		return 0, io.ErrClosedPipe
	}
	return pty.Read(p)
}

// Write sends raw bytes to the PTY (keyboard input destined for the
// child).
func (s *Session) Write(p []byte) (int, error) {
	s.mu.Lock()
	pty := s.p
	s.mu.Unlock()
	if pty == nil {
		return 0, io.ErrClosedPipe
	}
	return pty.Write(p)
}

// Resize updates both the PTY and the Grid's dimensions, and propagates
// SIGWINCH to the child so full-screen applications (top, htop, an
// editor) redraw at the new size.
func (s *Session) Resize(rows, cols int) {
	s.Grid.Resize(rows, cols)
	s.mu.Lock()
	pty := s.p
	pid := s.pid()
	s.mu.Unlock()
	if pty != nil {
		_ = pty.Resize(cols, rows)
	}
	if pid > 0 {
		sendWinch(pid)
	}
}

// waitLoop waits for the process to exit and records its status.
func (s *Session) waitLoop() {
	err := s.cmd.Wait()
	s.mu.Lock()
	if err != nil && s.cmd.ProcessState != nil {
		s.ExitCode = s.cmd.ProcessState.ExitCode()
	} else if err != nil {
		s.ExitCode = 1
	}
	s.Status = StatusExited
	s.mu.Unlock()
	close(s.done)
}

// Close terminates the session: sends SIGTERM, waits up to
// killGraceIterations*killGracePoll for a clean exit, then force-kills and
// closes the PTY. Mirrors the original's "ask nicely, then reap with a
// bounded poll" kill sequence — a picker/monitor child that ignores
// SIGTERM must not be allowed to wedge the popup shut indefinitely.
func (s *Session) Close() {
	s.mu.Lock()
	cmd := s.cmd
	pty := s.p
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		terminateGracefully(cmd.Process, s.done)
	}
	if pty != nil {
		pty.Close()
	}
	if s.done != nil {
		<-s.done
	}
}

// Done returns a channel closed when the process exits.
func (s *Session) Done() <-chan struct{} { return s.done }

// IsRunning reports whether the process is still alive.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status == StatusRunning
}
