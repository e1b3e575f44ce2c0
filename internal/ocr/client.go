// Package ocr wraps the remote recognition backend. The core treats its
// output as an opaque record; parsing and column mapping happen in the
// schema package.
package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/sync/errgroup"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/gcp"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
)

// UpstreamError reports a non-success response from the recognition
// backend. It aborts the extract operation.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("recognition backend failed during %s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client forwards card photographs to the Vertex recognition models.
type Client struct {
	vertex *gcp.VertexClient
}

// NewClient wraps an initialized Vertex client.
func NewClient(vertex *gcp.VertexClient) *Client {
	return &Client{vertex: vertex}
}

// Extract sends the image(s) to the extractor model and returns its
// parsed JSON verbatim, without interpreting the fields.
func (c *Client) Extract(ctx context.Context, images ...[]byte) (json.RawMessage, error) {
	parts := make([]genai.Part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, genai.ImageData("jpeg", img))
	}
	parts = append(parts, genai.Text(gcp.ExtractorUserPrompt))

	resp, err := c.vertex.ExtractorModel.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, &UpstreamError{Stage: "extract", Err: err}
	}

	raw := TrimModelJSON(textContent(resp))
	if raw == "" {
		return nil, &UpstreamError{Stage: "extract", Err: errors.New("empty model response")}
	}
	if !json.Valid([]byte(raw)) {
		return nil, &UpstreamError{Stage: "extract", Err: fmt.Errorf("model returned invalid JSON: %q", truncate(raw, 200))}
	}
	return json.RawMessage(raw), nil
}

// Enrich runs the web-research pass over an extracted record: one
// discovery query, then leadership and social-media deep dives in
// parallel, then a structuring call that merges everything back into
// the record shape. Enrichment is best-effort: on any failure the raw
// extraction is returned with the validation flag cleared.
func (c *Client) Enrich(ctx context.Context, record models.CardRecord) models.CardRecord {
	enriched, err := c.enrich(ctx, record)
	if err != nil {
		slog.Warn("Enrichment failed; keeping raw extraction.", "company", record.Company, "error", err)
		record.IsValidated = false
		return record
	}
	return enriched
}

func (c *Client) enrich(ctx context.Context, record models.CardRecord) (models.CardRecord, error) {
	logCtx := slog.With("company", record.Company, "location", record.Location)

	// --- 1. Discovery: find the legal entity behind the brand ---
	discovery, err := c.research(ctx, fmt.Sprintf(gcp.DiscoveryPromptFmt, record.Company, record.Location))
	if err != nil {
		return record, err
	}
	logCtx.Info("Discovery search complete.", "contextLength", len(discovery))

	// --- 2. Parallel deep dive using the discovered entity ---
	var leadership, socials string
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		leadership, err = c.research(gctx, fmt.Sprintf(gcp.LeadershipPromptFmt, discovery, record.Company))
		return err
	})
	eg.Go(func() error {
		var err error
		socials, err = c.research(gctx, fmt.Sprintf(gcp.SocialsPromptFmt, discovery, record.Company, record.Location))
		return err
	})
	if err := eg.Wait(); err != nil {
		return record, err
	}

	combined := fmt.Sprintf(
		"--- 1. DISCOVERY & LEGAL REGISTRATION ---\n%s\n\n--- 2. LEADERSHIP & OWNERSHIP ---\n%s\n\n--- 3. SOCIAL MEDIA & CONTACTS ---\n%s",
		discovery, leadership, socials)
	logCtx.Info("Deep dive complete.", "contextLength", len(combined))

	// --- 3. Structure the findings back into the record shape ---
	cardJSON, err := json.Marshal(record)
	if err != nil {
		return record, err
	}
	resp, err := c.vertex.StructurerModel.GenerateContent(ctx,
		genai.Text(fmt.Sprintf(gcp.StructurerUserPromptFmt, combined, string(cardJSON))))
	if err != nil {
		return record, &UpstreamError{Stage: "structure", Err: err}
	}

	raw := TrimModelJSON(textContent(resp))
	var enriched models.CardRecord
	if err := json.Unmarshal([]byte(raw), &enriched); err != nil {
		return record, &UpstreamError{Stage: "structure", Err: fmt.Errorf("unparsable structured output: %w", err)}
	}
	return enriched, nil
}

func (c *Client) research(ctx context.Context, prompt string) (string, error) {
	resp, err := c.vertex.ResearchModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &UpstreamError{Stage: "research", Err: err}
	}
	text := textContent(resp)
	if text == "" {
		return "", &UpstreamError{Stage: "research", Err: errors.New("empty research response")}
	}
	return text, nil
}

// textContent robustly gets the raw text content from a model response.
func textContent(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

// TrimModelJSON strips markdown fences the model sometimes wraps around
// its JSON despite the response MIME type.
func TrimModelJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
