package mcpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
	"github.com/kirillkom/docqa-client/internal/core/usecase"
)

const (
	ToolUploadDocument = "upload_document"
	ToolAskQuestion    = "ask_question"
	ToolSessionStatus  = "session_status"
)

// Tools exposes one session to an MCP client.
type Tools struct {
	session  *domain.Session
	files    ports.FileSource
	uploader ports.DocumentUploader
	asker    ports.QuestionAsker
	logger   *slog.Logger
}

func NewTools(
	session *domain.Session,
	files ports.FileSource,
	uploader ports.DocumentUploader,
	asker ports.QuestionAsker,
	logger *slog.Logger,
) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{
		session:  session,
		files:    files,
		uploader: uploader,
		asker:    asker,
		logger:   logger,
	}
}

func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(
		ToolUploadDocument,
		mcp.WithDescription("Uploads a local PDF to the document service. Later questions are answered from the most recently uploaded document."),
		mcp.WithString("path",
			mcp.Description("Path of the PDF file on this machine"),
			mcp.Required(),
		),
	), t.HandleUpload)

	s.AddTool(mcp.NewTool(
		ToolAskQuestion,
		mcp.WithDescription("Asks a question about the uploaded document and returns the answer text. Upload a document first."),
		mcp.WithString("question",
			mcp.Description("Natural-language question about the document"),
			mcp.Required(),
		),
	), t.HandleAsk)

	s.AddTool(mcp.NewTool(
		ToolSessionStatus,
		mcp.WithDescription("Reports which document, if any, questions will be asked about."),
	), t.HandleStatus)
}

func (t *Tools) HandleUpload(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")

	file, err := t.files.Load(ctx, path)
	if err != nil {
		t.logger.Warn("file_selection_failed", "session_id", t.session.ID(), "path", path, "error", err)
		file = nil
	}

	id, err := t.uploader.Upload(ctx, t.session, file)
	if err != nil {
		return mcp.NewToolResultError(usecase.UserMessage(err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s Document identifier: %s", usecase.MsgUploadSucceeded, id)), nil
}

func (t *Tools) HandleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answer, err := t.asker.Ask(ctx, t.session, req.GetString("question", ""))
	if err != nil {
		return mcp.NewToolResultError(usecase.UserMessage(err)), nil
	}
	return mcp.NewToolResultText(answer.Text), nil
}

func (t *Tools) HandleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := t.session.DocumentID()
	if !ok {
		return mcp.NewToolResultText("No document uploaded."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Document ready: %s", id)), nil
}
