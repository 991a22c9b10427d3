package summarizer

import (
	"fmt"
	"strings"
)

const (
	articlePromptTemplate = `Based on the provided article content, generate a concise and accurate summary. ` +
		`The summary should be professional, unbiased, and limited to %d tokens. ` +
		`If the content is insufficient, mention "information is incomplete."

Article content:
%s`

	collectivePromptTemplate = `Combine the provided article headlines and summaries into a concise and accurate collective summary. ` +
		`Exclude any reference to data structure or metadata. ` +
		`The summary should be professional, unbiased, and limited to %d tokens. ` +
		`If the content is insufficient, mention "information is incomplete."

Here is the data:
%s`

	collectiveUserPrompt = `Summarize the given content.
Exclude sentences that are irrelevant to the main topic, such as introductory or contextual phrases like: ` +
		`"Based on the provided article headlines and summaries, here is a concise and accurate collective summary."`
)

func ArticlePrompt(content string, maxTokens int64) string {
	return fmt.Sprintf(articlePromptTemplate, maxTokens, strings.TrimSpace(content))
}

func CollectivePrompt(input CollectiveInput, maxTokens int64) string {
	return fmt.Sprintf(collectivePromptTemplate, maxTokens, input.Render())
}
