package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/job-matcher/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type ExplanationInterface interface {
	Explain(sourceText, targetText string, matchPercentage int, tier Recommendation) string
}

// ExplanationService builds a short rationale for a match. It is a nicety:
// whatever goes wrong internally, the caller always gets non-empty text and
// never an error.
type ExplanationService struct {
	enricher ExplanationEnricherInterface
	log      *zap.Logger
}

func NewExplanationService(enricher ExplanationEnricherInterface, log *zap.Logger) *ExplanationService {
	return &ExplanationService{enricher: enricher, log: log}
}

func (s *ExplanationService) Explain(sourceText, targetText string, matchPercentage int, tier Recommendation) string {
	text := s.templated(sourceText, targetText, matchPercentage, tier)

	if s.enricher != nil {
		enriched, err := s.enricher.Enrich(text, matchPercentage)
		if err != nil {
			s.log.Debug("explanation enrichment failed, using template", zap.Error(err))
		} else if strings.TrimSpace(enriched) != "" {
			return enriched
		}
	}
	return text
}

func (s *ExplanationService) templated(sourceText, targetText string, matchPercentage int, tier Recommendation) string {
	base := genericExplanation(matchPercentage, tier)

	shared := sharedTerms(sourceText, targetText, 5)
	if len(shared) == 0 {
		return base
	}
	return fmt.Sprintf("%s Shared signals: %s.", base, strings.Join(shared, ", "))
}

func genericExplanation(matchPercentage int, tier Recommendation) string {
	switch tier {
	case RecommendationStrong:
		return fmt.Sprintf("Strong match (%d%%): the documents overlap heavily in content and focus.", matchPercentage)
	case RecommendationGood:
		return fmt.Sprintf("Good match (%d%%): substantial overlap with some gaps.", matchPercentage)
	case RecommendationWeak:
		return fmt.Sprintf("Weak match (%d%%): limited overlap between the documents.", matchPercentage)
	default:
		return fmt.Sprintf("Not recommended (%d%%): little to no meaningful overlap.", matchPercentage)
	}
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "our": {},
	"are": {}, "will": {}, "have": {}, "has": {}, "this": {}, "that": {},
	"your": {}, "from": {}, "not": {}, "all": {}, "can": {}, "who": {},
	"but": {}, "they": {}, "was": {}, "were": {}, "been": {}, "their": {},
}

// sharedTerms returns up to limit tokens that appear in both texts,
// case-insensitively, ordered by first appearance in the source text.
func sharedTerms(sourceText, targetText string, limit int) []string {
	targetSet := make(map[string]struct{})
	for _, tok := range tokenize(targetText) {
		targetSet[tok] = struct{}{}
	}

	seen := make(map[string]struct{})
	var shared []string
	for _, tok := range tokenize(sourceText) {
		if _, ok := targetSet[tok]; !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		shared = append(shared, tok)
		if len(shared) == limit {
			break
		}
	}
	return shared
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '+' && r != '#'
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

type ExplanationEnricherInterface interface {
	Enrich(explanation string, matchPercentage int) (string, error)
}

// OpenRouterEnricher asks an LLM to rephrase the templated explanation into
// one recruiter-friendly sentence. Strictly best effort.
type OpenRouterEnricher struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterEnricher() *OpenRouterEnricher {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterEnricher{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

func (s *OpenRouterEnricher) Enrich(explanation string, matchPercentage int) (string, error) {
	prompt := fmt.Sprintf(`
Rewrite this job-candidate match explanation as one short natural sentence.
Keep the %d%% figure. Do not add facts.

%s
`, matchPercentage, explanation)

	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": "You rewrite recruiting match explanations."},
				{"role": "user", "content": prompt},
			},
		}).
		Post("https://openrouter.ai/api/v1/chat/completions")
	if err != nil {
		return "", err
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return strings.TrimSpace(text), nil
}
