package cli

import (
	"github.com/spf13/cobra"

	"github.com/coldshard/coldshard/internal/output"
)

// renderResult writes data as JSON when the active formatter is JSON,
// otherwise writes the human-readable text form.
func renderResult(cmd *cobra.Command, data any, text string) error {
	if formatter != nil && formatter.Format() == output.FormatJSON {
		return formatter.Print(data)
	}
	cmd.Println(text)
	return nil
}
