package core

import "context"

// CompletionService turns a single user prompt into a text reply.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageService sends an image generation instruction and returns the raw output items.
type ImageService interface {
	GenerateImage(ctx context.Context, prompt string) ([]OutputItem, error)
}

// OutputItemImageGeneration marks an output item carrying a base64 encoded image.
const OutputItemImageGeneration = "image_generation_call"

type OutputItem struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
	Result string `json:"result,omitempty"`
}

type Credentials struct {
	Token    string
	Username string
	Password string
}

// Outcome describes a submitted comment.
type Outcome struct {
	Target    string `json:"target"`
	ImagePath string `json:"image_path,omitempty"`
	MessageID int    `json:"message_id,omitempty"`
	Message   string `json:"message"`
}

// Poster publishes comments on social posts.
type Poster interface {
	Platform() string
	Login(ctx context.Context, creds Credentials) error
	// FetchPostText never fails; it degrades to a placeholder text.
	FetchPostText(ctx context.Context, postRef string) string
	SubmitComment(ctx context.Context, postRef, text, imagePath string) (*Outcome, error)
}
