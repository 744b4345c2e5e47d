package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

type remoteFake struct {
	uploadCalls int
	askCalls    int

	uploadedFile   domain.File
	askedDocument  domain.DocumentID
	askedQuestion  string
	uploadReceipts []domain.UploadReceipt
	uploadErr      error
	answer         domain.Answer
	askErr         error
}

func (f *remoteFake) UploadDocument(_ context.Context, file domain.File) (domain.UploadReceipt, error) {
	f.uploadCalls++
	f.uploadedFile = file
	if f.uploadErr != nil {
		return domain.UploadReceipt{}, f.uploadErr
	}
	if len(f.uploadReceipts) == 0 {
		return domain.UploadReceipt{DocumentID: domain.DocumentID(file.Name)}, nil
	}
	receipt := f.uploadReceipts[0]
	f.uploadReceipts = f.uploadReceipts[1:]
	return receipt, nil
}

func (f *remoteFake) AskQuestion(_ context.Context, documentID domain.DocumentID, question string) (domain.Answer, error) {
	f.askCalls++
	f.askedDocument = documentID
	f.askedQuestion = question
	if f.askErr != nil {
		return domain.Answer{}, f.askErr
	}
	return f.answer, nil
}

type notifierFake struct {
	notifications []domain.Notification
	err           error
}

func (f *notifierFake) Notify(_ context.Context, n domain.Notification) error {
	f.notifications = append(f.notifications, n)
	return f.err
}

func (f *notifierFake) last() domain.Notification {
	if len(f.notifications) == 0 {
		return domain.Notification{}
	}
	return f.notifications[len(f.notifications)-1]
}

type displayFake struct {
	shown []string
}

func (f *displayFake) ShowAnswer(text string) {
	f.shown = append(f.shown, text)
}

func (f *displayFake) current() string {
	if len(f.shown) == 0 {
		return ""
	}
	return f.shown[len(f.shown)-1]
}

type inspectorFake struct {
	calls int
	info  domain.FileInfo
	err   error
}

func (f *inspectorFake) Inspect(context.Context, domain.File) (domain.FileInfo, error) {
	f.calls++
	return f.info, f.err
}

type recorderFake struct {
	started  []string
	outcomes map[string][]string
}

func (f *recorderFake) StartOperation(operation string) {
	f.started = append(f.started, operation)
}

func (f *recorderFake) FinishOperation(operation, outcome string, _ time.Duration) {
	if f.outcomes == nil {
		f.outcomes = make(map[string][]string)
	}
	f.outcomes[operation] = append(f.outcomes[operation], outcome)
}

var errNetwork = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

func pdfFile(name string) *domain.File {
	return &domain.File{Name: name, ContentType: "application/pdf", Data: []byte("%PDF-1.4 fake")}
}

func newCapturingLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// logRecord returns the first JSON record whose msg matches.
func logRecord(t *testing.T, buf *bytes.Buffer, msg string) map[string]any {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if record["msg"] == msg {
			return record
		}
	}
	t.Fatalf("no %q record in log:\n%s", msg, buf.String())
	return nil
}
