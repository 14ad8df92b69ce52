package meme

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"YoDawg/core"
)

// BuildImagePrompt asks the image service for a vertical meme with the caption in the
// top and bottom slots. Fitting the text is left to the service.
func BuildImagePrompt(caption core.Caption) string {
	return "Create a 1024×1792 vertical 'Yo Dawg' meme (extra vertical space helps text fit). " +
		"Subject: rapper **Xzibit (Alvin Joiner)**, photorealistic, braided cornrows, thin goatee, " +
		"diamond-stud earrings, studio headphones, big grin, thumbs-up. " +
		"Setting: neon-lit tech control room with code on multiple monitors.\n\n" +
		"The TOP caption MUST ALWAYS start with 'YO DAWG'. Place the TOP caption exactly as:\n" +
		"\"" + caption.Top + "\"\n" +
		"and the BOTTOM caption exactly as:\n" +
		"\"" + caption.Bottom + "\"\n" +
		"Use bold white Impact font with black outline. " +
		"→ If either line would overflow, **automatically reduce font size or wrap onto a second row** " +
		"so all words stay fully inside the frame. Do not crop text.\n\n" +
		"Keep the meme layout classic: top text, image, bottom text. " +
		"Vibrant blue-purple lighting, high contrast, sharp focus."
}

// Synthesize requests a generated meme and returns the decoded image bytes of the first
// image generation item.
func (c *Compositor) Synthesize(ctx context.Context, caption core.Caption, images core.ImageService) ([]byte, error) {
	items, err := images.GenerateImage(ctx, BuildImagePrompt(caption))
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}

	for _, item := range items {
		if item.Type != core.OutputItemImageGeneration || item.Result == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(item.Result)
		if err != nil {
			return nil, fmt.Errorf("%w: decode image payload: %v", core.ErrGenerationFailed, err)
		}
		c.log.With(
			slog.String("item", item.ID),
			slog.Int("bytes", len(data)),
		).Info("image generated")
		return data, nil
	}
	return nil, fmt.Errorf("%w: no image generation result in %d output items", core.ErrGenerationFailed, len(items))
}
