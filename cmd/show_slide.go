package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"photofolio-home/pkg/models"
)

// newShowSlideCmd creates a new command for showing slide details
func newShowSlideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-slide [id]",
		Short: "Show a single slide",
		Long:  `Show detailed information about the slide identified by its id.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slide id %q: %w", args[0], err)
			}

			svc, err := loadCatalogService(cmd.Context())
			if err != nil {
				return err
			}

			slide, err := svc.GetSlide(id)
			if err != nil {
				return err
			}
			showSlide(cmd.OutOrStdout(), slide)
			return nil
		},
	}
}

// showSlide displays every field of a slide
func showSlide(out io.Writer, slide models.Slide) {
	fmt.Fprintf(out, "Slide: %d\n", slide.ID)
	fmt.Fprintf(out, "Project: %s\n", slide.ProjectName)
	fmt.Fprintln(out, "================")
	fmt.Fprintf(out, "Image: %s\n", slide.Image)
	fmt.Fprintf(out, "Alt: %s\n", slide.Alt)
	fmt.Fprintf(out, "Color: %s\n", slide.BackgroundColor)
	if slide.HasURL() {
		fmt.Fprintf(out, "URL: %s\n", slide.URL)
	}
}
