package llm

import (
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o"

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient reads OPENAI_API_KEY from the environment.
func NewOpenAIClient(model string) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}, nil
}
