package groq

import "github.com/jobscout/agent/pkg/llm"

const trimMarker = "\n...\n[TRIMMED]\n...\n"

func totalChars(messages []llm.Message) int {
	n := 0
	for _, m := range messages {
		n += len(m.Content)
	}
	return n
}

// shrinkText keeps the head and tail of s around a trim marker so both the
// opening instructions and the closing question survive.
func shrinkText(s string, keep int) string {
	if len(s) <= keep {
		return s
	}
	head := keep / 2
	tail := keep - head
	return s[:head] + trimMarker + s[len(s)-tail:]
}

// shrinkMessages trims message contents proportionally until the combined
// size fits the budget. Each message keeps at least 500 characters so no
// turn disappears entirely.
func shrinkMessages(messages []llm.Message, budget int) []llm.Message {
	if totalChars(messages) <= budget {
		return messages
	}
	total := totalChars(messages)
	out := make([]llm.Message, len(messages))
	for i, m := range messages {
		keep := len(m.Content) * budget / total
		if keep < 500 {
			keep = 500
		}
		out[i] = llm.Message{Role: m.Role, Content: shrinkText(m.Content, keep)}
	}
	// The per-message floor can leave us over budget; keep shaving the
	// largest message until it fits or nothing sensible is left to cut.
	for totalChars(out) > budget {
		largest := 0
		for i := range out {
			if len(out[i].Content) > len(out[largest].Content) {
				largest = i
			}
		}
		c := out[largest].Content
		if len(c) <= 1000 {
			break
		}
		out[largest].Content = shrinkText(c, len(c)-1000)
	}
	return out
}
