package advisory

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"schoolhub/internal/logger"
	"schoolhub/internal/models"
)

// GeminiGenerator calls the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for model using apiKey
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// NewGeneratorFromConfig returns a Gemini generator, or a disabled one with a
// logged warning when apiKey is empty or the client can't be built.
func NewGeneratorFromConfig(ctx context.Context, apiKey, model string, log logger.Logger) Generator {
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY not configured; tutor and traffic insight will use fallback responses")
		return Disabled()
	}
	gen, err := NewGeminiGenerator(ctx, apiKey, model)
	if err != nil {
		log.Warn("advisory service unavailable; using fallback responses", err)
		return Disabled()
	}
	return gen
}

// Generate sends one request
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (Response, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := genai.Role(genai.RoleUser)
		if turn.Role == models.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.Maps {
		cfg.Tools = []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}}
		if req.Location != nil {
			cfg.ToolConfig = &genai.ToolConfig{
				RetrievalConfig: &genai.RetrievalConfig{
					LatLng: &genai.LatLng{
						Latitude:  genai.Ptr(req.Location.Latitude),
						Longitude: genai.Ptr(req.Location.Longitude),
					},
				},
			}
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generate: %w", err)
	}

	return Response{Text: resp.Text(), Citations: citations(resp)}, nil
}

func citations(resp *genai.GenerateContentResponse) []Citation {
	var out []Citation
	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			switch {
			case chunk == nil:
			case chunk.Maps != nil:
				out = append(out, Citation{URI: chunk.Maps.URI, Title: chunk.Maps.Title})
			case chunk.Web != nil:
				out = append(out, Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
			}
		}
	}
	return out
}
