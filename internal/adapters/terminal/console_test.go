package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/usecase"
	"github.com/kirillkom/docqa-client/internal/infrastructure/files/localfs"
	"github.com/kirillkom/docqa-client/internal/infrastructure/remote/docqa"
)

type consoleFixture struct {
	console  *Console
	session  *domain.Session
	display  *Display
	out      *bytes.Buffer
	requests *atomic.Int32
	dir      string
}

func newConsoleFixture(t *testing.T, handler http.HandlerFunc) consoleFixture {
	t.Helper()
	requests := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	contract, err := docqa.LoadContract(context.Background())
	if err != nil {
		t.Fatalf("LoadContract() error = %v", err)
	}
	remote := docqa.NewWithOptions(server.URL, docqa.Options{Contract: contract})

	out := &bytes.Buffer{}
	notifier := NewNotifier(out)
	display := NewDisplay(out)
	session := domain.NewSession("s-test")
	dir := t.TempDir()

	console := NewConsole(
		session,
		localfs.New(dir, 0),
		usecase.NewUploadCoordinator(remote, notifier, nil, nil, nil),
		usecase.NewQueryCoordinator(remote, notifier, display, nil, nil),
		out,
		nil,
	)
	return consoleFixture{console: console, session: session, display: display, out: out, requests: requests, dir: dir}
}

func documentService(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/upload/":
			_, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("FormFile() error = %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok", "filename": header.Filename})
		case "/ask/":
			if r.FormValue("filename") != "report.pdf" {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "file not found"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"answer": "It is a quarterly report."})
		default:
			http.NotFound(w, r)
		}
	}
}

func TestConsoleUploadThenAskScenario(t *testing.T) {
	fx := newConsoleFixture(t, documentService(t))
	if err := os.WriteFile(filepath.Join(fx.dir, "report.pdf"), []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	script := "upload report.pdf\nstatus\nask What is the summary?\nquit\nask never reached\n"
	if err := fx.console.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	id, _ := fx.session.DocumentID()
	if id != "report.pdf" {
		t.Fatalf("expected session report.pdf, got %q", id)
	}
	if fx.display.Current() != "It is a quarterly report." {
		t.Fatalf("unexpected displayed answer %q", fx.display.Current())
	}
	out := fx.out.String()
	for _, want := range []string{"[ok] " + usecase.MsgUploadSucceeded, "document: report.pdf", "answer: It is a quarterly report."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if fx.requests.Load() != 2 {
		t.Fatalf("expected 2 remote requests, got %d", fx.requests.Load())
	}
}

func TestConsoleAskBeforeUploadNeverCallsRemote(t *testing.T) {
	fx := newConsoleFixture(t, documentService(t))

	if err := fx.console.Run(context.Background(), strings.NewReader("ask hello?\nupload\n")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fx.requests.Load() != 0 {
		t.Fatalf("expected no remote requests, got %d", fx.requests.Load())
	}
	out := fx.out.String()
	if !strings.Contains(out, "[error] "+usecase.MsgPreconditionFailed) {
		t.Fatalf("expected precondition message in output:\n%s", out)
	}
	if !strings.Contains(out, "[error] "+usecase.MsgMissingInput) {
		t.Fatalf("expected missing input message in output:\n%s", out)
	}
}

func TestConsoleUnreadableFileCountsAsNoSelection(t *testing.T) {
	fx := newConsoleFixture(t, documentService(t))

	if err := fx.console.Run(context.Background(), strings.NewReader("upload missing.pdf\n")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fx.requests.Load() != 0 {
		t.Fatalf("expected no remote requests, got %d", fx.requests.Load())
	}
	if !strings.Contains(fx.out.String(), usecase.MsgMissingInput) {
		t.Fatalf("expected missing input message:\n%s", fx.out.String())
	}
}

func TestConsoleQueryFailureKeepsDisplayAndContinues(t *testing.T) {
	fx := newConsoleFixture(t, documentService(t))
	fx.session.SetDocumentID("other.pdf")

	if err := fx.console.Run(context.Background(), strings.NewReader("ask q\nstatus\n")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fx.display.Current() != "" {
		t.Fatalf("display must stay empty, got %q", fx.display.Current())
	}
	out := fx.out.String()
	if !strings.Contains(out, "[error] "+usecase.MsgQueryFailed) || !strings.Contains(out, "document: other.pdf") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestConsoleUnknownCommandAndHelp(t *testing.T) {
	fx := newConsoleFixture(t, documentService(t))

	if err := fx.console.Run(context.Background(), strings.NewReader("dance\nhelp\n")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := fx.out.String()
	if !strings.Contains(out, `unknown command "dance"`) || !strings.Contains(out, "upload <path>") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSplitCommand(t *testing.T) {
	command, arg := splitCommand("  ASK   What is the summary?  ")
	if command != "ask" || arg != "What is the summary?" {
		t.Fatalf("unexpected split: %q %q", command, arg)
	}
}

func TestConsoleRunReturnsWhenContextCancelled(t *testing.T) {
	f := newConsoleFixture(t, documentService(t))
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- f.console.Run(ctx, reader)
	}()

	cancel()
	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run still waiting for input after ctx was cancelled")
	}
}

func TestConsoleSkipsOverlongLine(t *testing.T) {
	f := newConsoleFixture(t, documentService(t))
	script := "ask " + strings.Repeat("x", maxLineBytes+16) + "\nstatus\nquit\n"

	if err := f.console.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	output := f.out.String()
	if !strings.Contains(output, "ignored") || !strings.Contains(output, "no document uploaded") {
		t.Fatalf("expected the long line skipped and the session kept running, got tail %q", output[max(0, len(output)-200):])
	}
	if f.requests.Load() != 0 {
		t.Fatalf("expected no remote calls, got %d", f.requests.Load())
	}
}
