package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"photofolio-home/pkg/models"
)

// newListSlidesCmd creates a new command for listing the slide catalog
func newListSlidesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-slides",
		Short: "List all slides of the catalog",
		Long:  `List all slides of the configured catalog in the order the slideshow shows them.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadCatalogService(cmd.Context())
			if err != nil {
				return err
			}
			listSlides(cmd.OutOrStdout(), svc.Slides())
			return nil
		},
	}
}

// listSlides displays every slide with its project and color
func listSlides(out io.Writer, slides []models.Slide) {
	fmt.Fprintln(out, "Slides:")
	fmt.Fprintln(out, "================")

	for _, slide := range slides {
		fmt.Fprintf(out, "%d. %s\n", slide.ID, slide.ProjectName)
		fmt.Fprintf(out, "   Color: %s\n", slide.BackgroundColor)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d slides\n", len(slides))
}
