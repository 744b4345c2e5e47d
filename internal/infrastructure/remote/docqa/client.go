package docqa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

const (
	DefaultUploadPath = "/upload/"
	DefaultAskPath    = "/ask/"

	defaultContentType = "application/octet-stream"
)

type Client struct {
	baseURL    string
	uploadPath string
	askPath    string
	httpClient *http.Client
	contract   *Contract
	logger     *slog.Logger
}

type Options struct {
	UploadPath string
	AskPath    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Contract   *Contract
	Logger     *slog.Logger
}

func New(baseURL string) *Client {
	return NewWithOptions(baseURL, Options{Timeout: 120 * time.Second})
}

func NewWithOptions(baseURL string, options Options) *Client {
	uploadPath := options.UploadPath
	if uploadPath == "" {
		uploadPath = DefaultUploadPath
	}
	askPath := options.AskPath
	if askPath == "" {
		askPath = DefaultAskPath
	}
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.Timeout}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadPath: uploadPath,
		askPath:    askPath,
		httpClient: httpClient,
		contract:   options.Contract,
		logger:     logger,
	}
}

func (c *Client) UploadDocument(ctx context.Context, file domain.File) (domain.UploadReceipt, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreatePart(filePartHeader(file))
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("create upload file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("write upload file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("close upload form: %w", err)
	}

	raw, err := c.postMultipart(ctx, c.uploadPath, &body, writer.FormDataContentType(), "upload")
	if err != nil {
		return domain.UploadReceipt{}, err
	}
	if err := c.validate(raw, "upload"); err != nil {
		return domain.UploadReceipt{}, err
	}

	var receipt domain.UploadReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("decode upload response: %w", err)
	}
	if receipt.DocumentID == "" {
		return domain.UploadReceipt{}, missingField("upload", "filename", raw)
	}
	return receipt, nil
}

func (c *Client) AskQuestion(ctx context.Context, documentID domain.DocumentID, question string) (domain.Answer, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := [][2]string{
		{"filename", string(documentID)},
		{"question", question},
	}
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return domain.Answer{}, fmt.Errorf("write ask field %s: %w", field[0], err)
		}
	}
	if err := writer.Close(); err != nil {
		return domain.Answer{}, fmt.Errorf("close ask form: %w", err)
	}

	raw, err := c.postMultipart(ctx, c.askPath, &body, writer.FormDataContentType(), "ask")
	if err != nil {
		return domain.Answer{}, err
	}
	if err := c.validate(raw, "ask"); err != nil {
		return domain.Answer{}, err
	}

	var response struct {
		Answer *string `json:"answer"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return domain.Answer{}, fmt.Errorf("decode ask response: %w", err)
	}
	if response.Answer == nil {
		return domain.Answer{}, missingField("ask", "answer", raw)
	}
	return domain.Answer{Text: *response.Answer}, nil
}

func (c *Client) validate(raw []byte, operation string) error {
	if c.contract == nil {
		return nil
	}
	var err error
	switch operation {
	case "upload":
		err = c.contract.ValidateUpload(raw)
	default:
		err = c.contract.ValidateAsk(raw)
	}
	if err == nil {
		return nil
	}
	if msg := remoteMessage(raw); msg != "" {
		return &RemoteError{Operation: operation, Message: msg, Cause: err}
	}
	return fmt.Errorf("docqa %s: %w", operation, err)
}

func missingField(operation, field string, raw []byte) error {
	err := fmt.Errorf("%s response has no %s", operation, field)
	if msg := remoteMessage(raw); msg != "" {
		return &RemoteError{Operation: operation, Message: msg, Cause: err}
	}
	return err
}

func filePartHeader(file domain.File) textproto.MIMEHeader {
	name := file.Name
	if name == "" {
		name = "document.pdf"
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	header.Set("Content-Type", contentType)
	return header
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
