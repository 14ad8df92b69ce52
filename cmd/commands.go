package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"YoDawg/actions"
	"YoDawg/storage"
)

func newQuoteCmd() *cobra.Command {
	var content, model string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Generate only the Yo Dawg caption",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := current.service.Quote(cmd.Context(), content, model)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.String())
			return err
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "text to turn into a caption")
	cmd.Flags().StringVar(&model, "model", "", "model selector, e.g. gpt-4o or ollama:gemma3:latest")
	return cmd
}

func newOverlayCmd() *cobra.Command {
	var content, template, output, model string
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Overlay a generated caption on a static image",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := current.service.StaticMeme(cmd.Context(), content, template, output, model)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "text to turn into a caption")
	cmd.Flags().StringVarP(&template, "template", "t", "", "static image (defaults to the configured template)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image path (defaults to the output directory)")
	cmd.Flags().StringVar(&model, "model", "", "model selector for the caption")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var content, model string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a meme image with the image model",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := current.service.GeneratedMeme(cmd.Context(), content, model)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "text to turn into a meme")
	cmd.Flags().StringVar(&model, "model", "", "model selector for the caption")
	return cmd
}

func newCommentCmd() *cobra.Command {
	var req actions.CommentRequest
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Create a meme and post it as a comment",
		Long: "Uses one of three sources: the post (--post), a custom context (--context), " +
			"or the post with the custom context appended (--post --context --append). " +
			"--image posts an existing image instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := current.service.Comment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&req.PostRef, "post", "p", "", "post to comment on, e.g. https://t.me/channel/42")
	cmd.Flags().StringVar(&req.CustomContext, "context", "", "custom context for the meme")
	cmd.Flags().BoolVar(&req.AppendCustomContext, "append", false, "append the custom context to the post text")
	cmd.Flags().StringVarP(&req.Mode, "mode", "m", storage.ModeStatic, "meme mode: static or generated")
	cmd.Flags().StringVar(&req.Model, "model", "", "model selector for the caption")
	cmd.Flags().StringVar(&req.ImagePath, "image", "", "post this image instead of generating a meme")
	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the poster credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.service.Login(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "login successful")
			return err
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently produced memes",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := current.service.Recent(limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				posted := ""
				if r.Posted {
					posted = " -> " + r.Target
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s %s|||%s  %s%s\n",
					r.CreatedAt.Format("2006-01-02 15:04:05"), r.Mode, r.Top, r.Bottom, r.ImagePath, posted); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of records")
	return cmd
}
