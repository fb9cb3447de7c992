package terminal

import (
	"strings"
	"testing"
	"time"
)

func TestSession_StartAndReadOutput(t *testing.T) {
	s := NewSession(10, 40)
	if err := s.Start("echo hello-session", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Close()

	deadline := time.Now().Add(2 * time.Second)
	buf := make([]byte, 4096)
	var got []byte
	for time.Now().Before(deadline) {
		n, err := s.Read(buf)
		if n > 0 {
			got = append(got, buf[:n]...)
			s.Grid.Write(buf[:n])
		}
		if strings.Contains(string(got), "hello-session") {
			break
		}
		if err != nil {
			time.Sleep(10 * time.Millisecond)
		}
	}
	if !strings.Contains(string(got), "hello-session") {
		t.Fatalf("expected child output to contain 'hello-session', got %q", got)
	}
}

func TestSession_CloseReapsWithinGraceWindow(t *testing.T) {
	s := NewSession(5, 20)
	if err := s.Start("sleep 5", ""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	start := time.Now()
	s.Close()
	elapsed := time.Since(start)

	maxGrace := killGraceIterations*killGracePoll + 2*time.Second
	if elapsed > maxGrace {
		t.Errorf("Close took %v, want under %v (SIGTERM grace + kill)", elapsed, maxGrace)
	}
	if s.IsRunning() {
		t.Error("session should not report running after Close")
	}
}

func TestSession_Resize(t *testing.T) {
	s := NewSession(10, 10)
	s.Resize(20, 30)
	if s.Grid.Rows() != 20 || s.Grid.Cols() != 30 {
		t.Errorf("grid size after Resize = %dx%d, want 20x30", s.Grid.Rows(), s.Grid.Cols())
	}
}
