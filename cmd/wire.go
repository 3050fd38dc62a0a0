package cmd

import (
	"ragbot/internal/answer"
	"ragbot/internal/config"
	"ragbot/internal/embeddings"
	"ragbot/internal/lang"
	"ragbot/internal/llm"
	"ragbot/internal/retriever"
	"ragbot/internal/store"
)

// newEmbeddingsProvider resolves the embeddings API key and constructs the
// provider for the configured model.
func newEmbeddingsProvider(cfg *config.Config) (embeddings.Provider, error) {
	key, err := config.GetConfigValue("RAGBOT_EMBEDDINGS_API_KEY")
	if err != nil {
		return nil, err
	}
	return embeddings.NewFromConfig(cfg.Embedding, key)
}

// newAnswerer wires the full question-answering pipeline from config:
// index store (optionally backed by a remote fetch), retriever, language
// detector and chat generator.
func newAnswerer(cfg *config.Config) (*answer.Orchestrator, error) {
	prov, err := newEmbeddingsProvider(cfg)
	if err != nil {
		return nil, err
	}

	var fetch store.FetchFunc
	if cfg.IndexFetchURL != "" {
		fetch = store.HTTPFetcher(cfg.IndexFetchURL)
	}
	st := store.New(cfg.IndexDir, fetch)

	llmKey, err := config.GetConfigValue("RAGBOT_LLM_API_KEY")
	if err != nil {
		return nil, err
	}
	gen := llm.NewFromConfig(cfg.LLM, llmKey)

	r := retriever.New(st, prov, cfg.Retrieval.TopK)
	return answer.New(r, lang.NewMarkerDetector(), gen, cfg.LLM), nil
}
