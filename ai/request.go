package ai

import "YoDawg/core"

type GPTRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletion struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Error   *Error   `json:"error"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Error struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

func NewRequest(content, model string) *GPTRequest {
	return &GPTRequest{
		Model:    model,
		Messages: []Message{{Role: "user", Content: content}},
	}
}

// ImageGenerationRequest is a responses API call declaring the image generation tool
type ImageGenerationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Tools []Tool `json:"tools"`
}

type Tool struct {
	Type string `json:"type"`
}

type ImageGenerationResponse struct {
	ID     string            `json:"id"`
	Model  string            `json:"model"`
	Output []core.OutputItem `json:"output"`
	Error  *Error            `json:"error"`
}

func NewImageRequest(prompt, model string) *ImageGenerationRequest {
	return &ImageGenerationRequest{
		Model: model,
		Input: prompt,
		Tools: []Tool{{Type: "image_generation"}},
	}
}
