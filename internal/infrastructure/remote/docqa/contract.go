package docqa

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var contractSpec []byte

const jsonContentType = "application/json"

// Contract holds the response schemas of the remote service.
type Contract struct {
	upload *openapi3.Schema
	ask    *openapi3.Schema
}

func LoadContract(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractSpec)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate contract: %w", err)
	}

	upload, err := responseSchema(doc, "/upload/", http.MethodPost)
	if err != nil {
		return nil, err
	}
	ask, err := responseSchema(doc, "/ask/", http.MethodPost)
	if err != nil {
		return nil, err
	}
	return &Contract{upload: upload, ask: ask}, nil
}

func (c *Contract) ValidateUpload(raw []byte) error {
	return validateAgainst(c.upload, raw)
}

func (c *Contract) ValidateAsk(raw []byte) error {
	return validateAgainst(c.ask, raw)
}

func responseSchema(doc *openapi3.T, path, method string) (*openapi3.Schema, error) {
	item := doc.Paths.Value(path)
	if item == nil {
		return nil, fmt.Errorf("contract has no path %s", path)
	}
	op := item.GetOperation(method)
	if op == nil || op.Responses == nil {
		return nil, fmt.Errorf("contract has no %s %s operation", method, path)
	}
	resp := op.Responses.Status(http.StatusOK)
	if resp == nil || resp.Value == nil {
		return nil, fmt.Errorf("contract has no 200 response for %s %s", method, path)
	}
	media := resp.Value.Content.Get(jsonContentType)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract has no json schema for %s %s", method, path)
	}
	return media.Schema.Value, nil
}

func validateAgainst(schema *openapi3.Schema, raw []byte) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("response violates contract: %w", err)
	}
	return nil
}
