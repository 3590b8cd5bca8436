package similarity

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Embedder produces a vector representation of a text. Implementations
// must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// DefaultEmbeddingModel is the Gemini embedding model used unless
// configured otherwise.
const DefaultEmbeddingModel = "text-embedding-004"

// defaultEmbedTimeout bounds a single embedding call.
const defaultEmbedTimeout = 15 * time.Second

// GeminiEmbedder implements Embedder on the Gemini embeddings API.
type GeminiEmbedder struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model, timeout: defaultEmbedTimeout}, nil
}

// Embed returns the embedding vector for text. Backend failures are
// wrapped in BackendUnavailableError so callers can fall back.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.EmbeddingModel(e.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &BackendUnavailableError{Backend: "gemini:" + e.model, Err: err}
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &BackendUnavailableError{Backend: "gemini:" + e.model, Err: fmt.Errorf("empty embedding response")}
	}
	return resp.Embedding.Values, nil
}

// Close releases the underlying API client.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Cosine returns the cosine similarity of two vectors, or an error
// when dimensions differ or either vector is zero.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &ComputationError{Component: "semantic_similarity", Reason: fmt.Sprintf("dimension mismatch: %d vs %d", len(a), len(b))}
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, &ComputationError{Component: "semantic_similarity", Reason: "zero vector"}
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

var tokenPattern = regexp.MustCompile(`[a-z0-9+#]+`)

// tokenize lowercases text and drops short stop tokens.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(token) < 3 || stopwords[token] {
			continue
		}
		tokens[token] = true
	}
	return tokens
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"are": true, "our": true, "will": true, "have": true, "this": true,
	"that": true, "from": true, "your": true, "their": true, "been": true,
	"has": true, "who": true, "all": true, "can": true, "not": true,
}

// LexicalOverlap is the Jaccard similarity of the token sets of two
// texts, in [0,1]. It is the fallback when no embedding backend is
// reachable.
func LexicalOverlap(a, b string) float64 {
	setA, setB := tokenize(a), tokenize(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
