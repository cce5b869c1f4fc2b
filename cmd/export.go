package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"photofolio-home/pkg/models"
)

// ErrUnsupportedFormat is returned for export formats other than json
var ErrUnsupportedFormat = errors.New("unsupported export format (supported formats: json)")

// newExportCmd creates a new command for exporting the catalog
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export the slide catalog",
		Long: `Export the slide catalog in the specified format. Currently supported formats: json.
The output can be used as a CATALOG_FILE.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "json" {
				return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
			}

			svc, err := loadCatalogService(cmd.Context())
			if err != nil {
				return err
			}
			return exportSlides(cmd.OutOrStdout(), svc.Slides())
		},
	}
}

// exportSlides writes the catalog as indented JSON
func exportSlides(out io.Writer, slides []models.Slide) error {
	data, err := json.MarshalIndent(slides, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling slides: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}
