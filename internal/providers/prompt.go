package providers

import (
	"strings"
)

const SystemInstruction = "You are a helpful assistant answering questions for tests."

// instruction to make every model reply with the choice index only.
const promptTemplate = `Answer the following question and choose one of the following answer choices. DO NOT answer with the whole answer, only answer with the NUMBER in which the choice appears in. FOR EXAMPLE, if the correct answer choice is the 3rd one listed, return 3. DO NOT provide any extra information or context.

Question and choices: {query}

BE SURE TO ONLY RETURN A NUMBER!
`

// BuildPrompt embeds the raw query (question + choices) into the template.
func BuildPrompt(query string) string {
	return strings.Replace(promptTemplate, "{query}", query, 1)
}
