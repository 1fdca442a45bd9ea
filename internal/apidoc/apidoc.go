// Package apidoc loads the embedded OpenAPI document describing the HTTP API.
package apidoc

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var spec []byte

// Load parses and validates the embedded OpenAPI document
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// Handler serves the document as JSON
type Handler struct {
	body []byte
}

// NewHandler renders doc to JSON once
func NewHandler(doc *openapi3.T) (*Handler, error) {
	body, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAPI document: %w", err)
	}
	return &Handler{body: body}, nil
}

// GetOpenAPI writes the OpenAPI document
func (h *Handler) GetOpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", h.body)
}
