package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type MatchingConfig struct {
	EmbeddingDim  int
	DefaultTopK   int
	EnrichExplain bool
}

var (
	matchingConfig *MatchingConfig
	matchingOnce   sync.Once
)

func LoadMatchingConfig() *MatchingConfig {
	matchingOnce.Do(func() {
		dim := 768
		if v := os.Getenv("EMBEDDING_DIM"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				log.Fatalf("invalid EMBEDDING_DIM %q", v)
			}
			dim = parsed
		}
		topK := 10
		if v := os.Getenv("MATCH_DEFAULT_TOP_K"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				log.Fatalf("invalid MATCH_DEFAULT_TOP_K %q", v)
			}
			topK = parsed
		}
		matchingConfig = &MatchingConfig{
			EmbeddingDim:  dim,
			DefaultTopK:   topK,
			EnrichExplain: os.Getenv("OPENROUTER_API_KEY") != "",
		}
	})
	return matchingConfig
}
