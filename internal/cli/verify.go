package cli

import (
	"github.com/spf13/cobra"

	"github.com/coldshard/coldshard/internal/commitment"
	"github.com/coldshard/coldshard/pkg/errs"
)

var (
	verifyShareLine  string
	verifyCommitment string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a share against a published commitment",
	Long: `Verify reports whether a share (given as the wire form "{index}: {words}")
matches a previously published commitment, without attempting recovery —
the sharing equivalent of checking a file against a published checksum.`,
	Example: `  coldshard verify --share "3: account blade course knee monitor win chalk twice race cook tray report" ` +
		`--commitment 3252fb9ca80f46c928d64ce5f690d76fa848b410049b17cfb637a32f43660def`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if verifyShareLine == "" || verifyCommitment == "" {
		return errs.WithDetails(errs.ErrInvalidParameters, map[string]string{
			"reason": "--share and --commitment are both required",
		})
	}

	index, words, err := parseShareLine(verifyShareLine)
	if err != nil {
		return err
	}

	ok := commitment.Verify(verifyCommitment, index, words)
	result := "mismatch"
	if ok {
		result = "match"
	}

	return renderResult(cmd, map[string]any{"result": result, "match": ok}, result)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	verifyCmd.Flags().StringVar(&verifyShareLine, "share", "", `a share line "{index}: {words}" (required)`)
	verifyCmd.Flags().StringVar(&verifyCommitment, "commitment", "", "hex commitment to check against (required)")
	_ = verifyCmd.MarkFlagRequired("share")
	_ = verifyCmd.MarkFlagRequired("commitment")
}
