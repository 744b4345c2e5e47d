package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
)

const helpText = `commands:
  upload <path>     send a PDF and keep its identifier for questions
  ask <question>    ask about the uploaded document
  status            show the uploaded document
  help              show this text
  quit              leave
`

// Console drives one session from line-oriented input.
type Console struct {
	session  *domain.Session
	files    ports.FileSource
	uploader ports.DocumentUploader
	asker    ports.QuestionAsker
	out      io.Writer
	logger   *slog.Logger
}

func NewConsole(
	session *domain.Session,
	files ports.FileSource,
	uploader ports.DocumentUploader,
	asker ports.QuestionAsker,
	out io.Writer,
	logger *slog.Logger,
) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		session:  session,
		files:    files,
		uploader: uploader,
		asker:    asker,
		out:      out,
		logger:   logger,
	}
}

// maxLineBytes bounds one command line. Longer lines are reported and skipped.
const maxLineBytes = 1 << 20

type inputLine struct {
	text    string
	tooLong bool
	err     error
}

// Run reads commands until EOF, quit, or ctx is done. Operation failures are
// reported by the coordinators and never end the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	c.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line.err != nil {
				return fmt.Errorf("read input: %w", line.err)
			}
			if line.tooLong {
				c.logger.Warn("input_line_too_long", "session_id", c.session.ID(), "limit_bytes", maxLineBytes)
				_, _ = fmt.Fprintf(c.out, "line longer than %d bytes ignored\n", maxLineBytes)
			} else if !c.handle(ctx, line.text) {
				return nil
			}
			c.prompt()
		}
	}
}

// readLines feeds lines from in until EOF, a read error, or done is closed.
// A blocked read keeps its goroutine until in returns.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			text, tooLong, err := readLine(reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					select {
					case lines <- inputLine{err: err}:
					case <-done:
					}
				}
				return
			}
			select {
			case lines <- inputLine{text: text, tooLong: tooLong}:
			case <-done:
				return
			}
		}
	}()
	return lines
}

func readLine(reader *bufio.Reader) (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func (c *Console) handle(ctx context.Context, line string) bool {
	command, arg := splitCommand(line)
	switch command {
	case "":
	case "upload":
		c.upload(ctx, arg)
	case "ask":
		_, _ = c.asker.Ask(ctx, c.session, arg)
	case "status":
		c.status()
	case "help", "?":
		_, _ = io.WriteString(c.out, helpText)
	case "quit", "exit":
		return false
	default:
		_, _ = fmt.Fprintf(c.out, "unknown command %q, type help\n", command)
	}
	return true
}

func (c *Console) upload(ctx context.Context, path string) {
	file, err := c.files.Load(ctx, path)
	if err != nil {
		// An unreadable selection counts as no selection.
		c.logger.Warn("file_selection_failed", "session_id", c.session.ID(), "path", path, "error", err)
		file = nil
	}
	_, _ = c.uploader.Upload(ctx, c.session, file)
}

func (c *Console) status() {
	id, ok := c.session.DocumentID()
	if !ok {
		_, _ = io.WriteString(c.out, "no document uploaded\n")
		return
	}
	_, _ = fmt.Fprintf(c.out, "document: %s\n", id)
}

func (c *Console) prompt() {
	_, _ = io.WriteString(c.out, "> ")
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	command, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(command), strings.TrimSpace(arg)
}
