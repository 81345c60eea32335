package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

func (c *OpenAIClient) SummarizeRun(ctx context.Context, input SummaryInput) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildSummaryPrompt(input)},
		},
		Temperature: 0.2,
		MaxTokens:   600,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no summary choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// BuildSummaryPrompt renders the run as the user message of the summary request.
func BuildSummaryPrompt(input SummaryInput) string {
	var sb strings.Builder
	sb.WriteString("RUN:\n" + input.RunID + "\n\n")
	sb.WriteString("TARGET:\n" + input.Target + "\n\n")
	sb.WriteString("EXIT_REASON:\n" + input.ExitReason + "\n\n")
	sb.WriteString("DURATION:\n" + input.Duration + "\n\n")
	sb.WriteString(fmt.Sprintf("SEARCHES:\n%d\n\n", input.Iterations))
	sb.WriteString(fmt.Sprintf("COINS_SPENT:\n%d\n\n", input.Spent))

	if len(input.Outcomes) > 0 {
		keys := make([]string, 0, len(input.Outcomes))
		for k := range input.Outcomes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("OUTCOMES:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("%s=%d\n", k, input.Outcomes[k]))
		}
		sb.WriteString("\n")
	}

	if len(input.Cycles) > 0 {
		sb.WriteString("RECENT_CYCLES:\n")
		for _, s := range input.Cycles {
			sb.WriteString(s + "\n")
		}
	}
	return sb.String()
}
