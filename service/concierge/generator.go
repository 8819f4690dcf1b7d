package concierge

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// ErrRateLimited marks failures caused by the request budget, local or remote.
var ErrRateLimited = errors.New("concierge: rate limited")

// Generator produces the assistant reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

type GeminiSettings struct {
	APIKey            string
	Model             string
	Temperature       float32
	MaxOutputTokens   int32
	RequestsPerMinute int
}

// GeminiGenerator calls the Gemini API. A local limiter mirrors the free
// tier quota so the service stops before the API starts refusing.
type GeminiGenerator struct {
	client   *genai.Client
	settings GeminiSettings
	limiter  *rate.Limiter
}

func NewGeminiGenerator(ctx context.Context, settings GeminiSettings) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(settings.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if settings.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(settings.RequestsPerMinute)), settings.RequestsPerMinute)
	}

	return &GeminiGenerator{client: client, settings: settings, limiter: limiter}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if !g.limiter.Allow() {
		return "", ErrRateLimited
	}

	model := g.client.GenerativeModel(g.settings.Model)
	model.SetTemperature(g.settings.Temperature)
	model.SetMaxOutputTokens(g.settings.MaxOutputTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompt.SystemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.UserContent))
	if err != nil {
		if IsRateLimited(err) {
			return "", errors.Wrap(ErrRateLimited, err.Error())
		}
		return "", errors.Wrap(err, "gemini generate error")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Warnf("[GeminiGenerator] Empty response from model %s", g.settings.Model)
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// IsRateLimited classifies quota and HTTP 429 failures.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPCode() == 429 {
			return true
		}
		if st := apiErr.GRPCStatus(); st != nil && st.Code() == codes.ResourceExhausted {
			return true
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == 429 {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted")
}

// ErrNotConfigured is returned by UnconfiguredGenerator.
var ErrNotConfigured = errors.New("concierge: no API key configured")

// UnconfiguredGenerator stands in when no API key is set. Every reply is the
// generic apology.
type UnconfiguredGenerator struct{}

func (UnconfiguredGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return "", ErrNotConfigured
}
