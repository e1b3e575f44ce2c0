package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
)

// --- Extractor Model Prompts ---
const ExtractorSystemPrompt = "You are an expert OCR assistant for business cards. You extract card details into strict JSON and never invent information that is not on the card."
const ExtractorUserPrompt = `Extract the business card details from the attached photograph(s) into a JSON object with these keys:
{company, name, title, phone, email, address, location, website}

Rules:
- Use an empty string for any field that is not on the card.
- "location" is the city/state only; "address" is the full street address.
- Keep phone numbers exactly as printed, including the country prefix.
- Return ONLY the JSON object.`

// --- Research Model Prompts ---
const ResearchSystemPrompt = "You are a company research assistant. You verify whether a business is legitimate and collect its public footprint: registration, leadership, services and social media. Report plain findings with source URLs."

const DiscoveryPromptFmt = `Find the legal registered entity name, registration details (GST/CIN or the local equivalent), and the owner for this business:

Company: %s
Location: %s

If a parent company exists, identify it. Report what you find with sources.`

const LeadershipPromptFmt = `Context from a previous discovery search:
%s

Task: find the directors, partners or owners of the legal entity above, and any public contact details (email or phone) for them. Also consider the brand name %q.`

const SocialsPromptFmt = `Context from a previous discovery search:
%s

Task: find the OFFICIAL social media profile URLs (Instagram, Facebook, LinkedIn) for the business %q in %q. Extract the full raw profile URLs, not summaries.`

// --- Structurer Model Prompts ---
const StructurerSystemPrompt = "You are a data structuring assistant. Convert the provided research text into the strict JSON schema you are given. Output only valid JSON."
const StructurerUserPromptFmt = `Here is the investigation report for a business card:

%s

Original card data:
%s

Using ONLY the information above, fill out one JSON object with exactly these keys:
{company, name, title, phone, email, address, location, industry, website, social_media, services, company_size, founded_year, registration_status, trust_score, key_people, key_people_str, validation_source, is_validated, about_the_company}

Rules:
- "key_people" is a list of {name, role, contact} objects; use "Not Found" for a missing contact.
- "social_media" must contain the full raw profile URLs, comma separated. Do not summarize.
- If a registration (GST/CIN/MCA) was found, set "registration_status" to a string containing "Verified" and set "is_validated" to true with the best source URL in "validation_source".
- "trust_score" is a string from "0" to "10"; 9-10 only when website, registration and social media were all found.
- Use empty strings for anything not found.`

// VertexClient holds all pre-configured generative models for the card backend.
type VertexClient struct {
	ExtractorModel  *genai.GenerativeModel
	ResearchModel   *genai.GenerativeModel
	StructurerModel *genai.GenerativeModel
	baseClient      *genai.Client
}

// NewVertexClient creates a new client holding all necessary models.
func NewVertexClient(ctx context.Context, projectID, region string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	// --- Configure the extractor model ---
	extractorModel := baseClient.GenerativeModel("gemini-1.5-pro")
	extractorModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ExtractorSystemPrompt)},
	}
	extractorModel.GenerationConfig = genai.GenerationConfig{
		// Force JSON output for the extraction result.
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	// --- Configure the research model ---
	researchModel := baseClient.GenerativeModel("gemini-1.5-pro")
	researchModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ResearchSystemPrompt)},
	}

	// --- Configure the structurer model ---
	structurerModel := baseClient.GenerativeModel("gemini-1.5-pro")
	structurerModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(StructurerSystemPrompt)},
	}
	structurerModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	return &VertexClient{
		ExtractorModel:  extractorModel,
		ResearchModel:   researchModel,
		StructurerModel: structurerModel,
		baseClient:      baseClient,
	}, nil
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
