// Package gemini assembles the streaming pipeline for the Gemini
// generate-content API and implements [genstream.Provider] over plain HTTP.
//
// [NewStream] turns any response body into a [genstream.Stream]: the body is
// decoded and framed by package sse, split by package tee into a live branch
// and an aggregation branch, and exposed as a pull-based live sequence plus
// a memoized aggregated response. [Client] is a thin transport that opens
// such bodies.
package gemini

import (
	"github.com/fwojciec/genstream"
	"google.golang.org/genai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
	apiVersion     = "v1beta"

	streamMethod   = "streamGenerateContent"
	generateMethod = "generateContent"
)

// apiRequest is the JSON body of a generate-content request.
type apiRequest struct {
	Contents          []*genai.Content       `json:"contents"`
	SystemInstruction *genai.Content         `json:"systemInstruction,omitempty"`
	Tools             []*genai.Tool          `json:"tools,omitempty"`
	SafetySettings    []*genai.SafetySetting `json:"safetySettings,omitempty"`
	GenerationConfig  *apiGenerationConfig   `json:"generationConfig,omitempty"`
}

type apiGenerationConfig struct {
	MaxOutputTokens int                   `json:"maxOutputTokens,omitempty"`
	Temperature     *float64              `json:"temperature,omitempty"`
	CandidateCount  int                   `json:"candidateCount,omitempty"`
	ThinkingConfig  *genai.ThinkingConfig `json:"thinkingConfig,omitempty"`
}

// apiErrorResponse is the JSON body returned on non-2xx HTTP responses.
type apiErrorResponse struct {
	Error apiErrorDetail `json:"error"`
}

type apiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Interface compliance checks.
var (
	_ genstream.Provider = (*Client)(nil)
	_ genstream.Stream   = (*stream)(nil)
)
