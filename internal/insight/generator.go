// Package insight generates the AI analysis attached to a persisted scan: a
// summary, competitive gaps, and a phased improvement roadmap. Without an
// API credential it serves a canned response so the panel is never empty.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
)

const DefaultAPIBaseURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are an elite SEO strategist. Analyze the data and provide a JSON response with keys: " +
	"'summary' (string), 'gaps' (array of strings), and 'bridge_roadmap' (array of objects with 'phase' and 'actions'). " +
	"Ensure the response is valid JSON."

// Config for the generator. Empty APIKey means every call returns the canned
// fallback.
type Config struct {
	APIKey     string
	APIBaseURL string
	Model      string
}

type Generator struct {
	cfg    Config
	wc     interfaces.WebClient
	logger interfaces.Logger
}

func NewGenerator(cfg Config, wc interfaces.WebClient, logger interfaces.Logger) *Generator {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Generator{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(interfaces.Field{Key: "component", Value: "insight"}),
	}
}

// Generate produces an insight for the scan summary. API failures fall back
// to the canned response rather than erroring: insight is decoration, not a
// scan-critical signal.
func (g *Generator) Generate(ctx context.Context, scan *model.ScanResult) *model.Insight {
	if g.cfg.APIKey == "" {
		return cannedInsight(scan.Domain)
	}

	insight, err := g.callAPI(ctx, scan)
	if err != nil {
		g.logger.Warn("insight generation failed, using canned response",
			interfaces.Field{Key: "domain", Value: scan.Domain},
			interfaces.Field{Key: "error", Value: err.Error()})
		return cannedInsight(scan.Domain)
	}
	return insight
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Generator) callAPI(ctx context.Context, scan *model.ScanResult) (*model.Insight, error) {
	summary := map[string]any{
		"domain":      scan.Domain,
		"techStack":   scan.Tech,
		"performance": scan.Performance,
		"seo":         scan.SEO,
		"competitors": scan.Competitors,
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal scan summary: %w", err)
	}

	reqBody := chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze the following website data for %s: %s", scan.Domain, summaryJSON)},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	resp, err := g.wc.Do(ctx, &model.Request{
		Method: http.MethodPost,
		URL:    g.cfg.APIBaseURL,
		Headers: http.Header{
			"Authorization": []string{"Bearer " + g.cfg.APIKey},
			"Content-Type":  []string{"application/json"},
		},
		Body: payload,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("insight api status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat response has no choices")
	}

	var insight model.Insight
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &insight); err != nil {
		return nil, fmt.Errorf("decode insight payload: %w", err)
	}
	insight.Generated = true
	return &insight, nil
}

// cannedInsight is the credential-less fallback.
func cannedInsight(domain string) *model.Insight {
	return &model.Insight{
		Summary: fmt.Sprintf("Our AI analysis of %s indicates a solid technical foundation, but significant gaps in off-page authority and content depth compared to the competitive landscape.", domain),
		Gaps: []string{
			"Authority Gap: Your Domain Rating is significantly lower than the top 3 competitors.",
			"Content Velocity: Competitors are publishing 5x more content monthly.",
			"Technical Debt: LCP (Largest Contentful Paint) is slowing down mobile conversion.",
		},
		BridgeRoadmap: []model.RoadmapPhase{
			{
				Phase: "Stabilize (Weeks 1-2)",
				Actions: []string{
					"Fix Core Web Vitals (Target LCP < 2.5s)",
					"Implement Schema markup for Rich Snippets",
					"Optimize meta titles for top 10 keywords",
				},
			},
			{
				Phase: "Accelerate (Month 1)",
				Actions: []string{
					"Launch 'Skyscraper' content campaign for high-value terms",
					"Acquire 5-10 backlinks from DA 50+ industry sites",
					"Fix 404 errors and redirect chains",
				},
			},
			{
				Phase: "Dominate (Month 3+)",
				Actions: []string{
					"Establish topical authority with clustered content hubs",
					"Launch video marketing strategy",
					"Implement advanced user behavior tracking",
				},
			},
		},
		Generated: false,
	}
}
