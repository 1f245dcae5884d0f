package checkers

import (
	"context"
	"errors"
)

// GroqChecker verifies the LLM credential is configured. No network
// round trip happens here; a bad key surfaces on the first chat call.
type GroqChecker struct {
	apiKey string
}

func NewGroqChecker(apiKey string) *GroqChecker {
	return &GroqChecker{apiKey: apiKey}
}

func (c *GroqChecker) Name() string { return "groq" }

func (c *GroqChecker) Check(context.Context) error {
	if c.apiKey == "" {
		return errors.New("GROQ_API_KEY is not set")
	}
	return nil
}
