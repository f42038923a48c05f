package cli

import (
	"github.com/spf13/cobra"

	"github.com/coldshard/coldshard/internal/mnemonic"
	"github.com/coldshard/coldshard/internal/secure"
	"github.com/coldshard/coldshard/internal/shamir"
)

var (
	recoverShareLines        []string
	recoverCommitments       []string
	recoverThreshold         int
	recoverAllowUnknownThold bool
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Reconstruct a secret from threshold shares",
	Long: `Recover reconstructs the original secret from a set of shares, each
given as the wire form "{index}: {words}". By default the set must contain
at least --threshold shares; pass --allow-unknown-threshold to reconstruct
from whatever is supplied without that check (the historical, permissive
behavior). --commitment may be repeated once per --share, in the same
order, to verify each share against its published commitment before
reconstruction.`,
	Example: `  coldshard recover --share "2: fun toast deer..." --share "3: analyst battle east..." ` +
		`--share "5: develop swarm behind..." --threshold 3`,
	RunE: runRecover,
}

func runRecover(cmd *cobra.Command, _ []string) error {
	lines := recoverShareLines
	if len(lines) == 0 {
		line, err := promptMnemonicFn()
		if err != nil {
			return err
		}
		lines = []string{line}
	}

	shares := make([]shamir.Share, 0, len(lines))
	for _, line := range lines {
		index, words, err := parseShareLine(line)
		if err != nil {
			return err
		}
		value, err := mnemonic.Decode(joinWords(words))
		if err != nil {
			return err
		}
		shares = append(shares, shamir.Share{Index: index, Value: value})
	}

	var commitments []string
	if len(recoverCommitments) > 0 {
		commitments = recoverCommitments
	}

	secret, err := shamir.Combine(shamir.RecoverParams{
		Shares:                shares,
		Commitments:           commitments,
		Threshold:             recoverThreshold,
		AllowUnknownThreshold: recoverAllowUnknownThold || (cfg != nil && cfg.Sharing.AllowUnknownThreshold),
	})
	if err != nil {
		return err
	}
	defer secure.Zero(secret)

	phrase, err := mnemonic.EncodeString(secret)
	if err != nil {
		return err
	}

	return renderResult(cmd, map[string]string{"mnemonic": phrase}, phrase)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	recoverCmd.Flags().StringArrayVar(&recoverShareLines, "share", nil,
		`a share line "{index}: {words}" (repeat once per share)`)
	recoverCmd.Flags().StringArrayVar(&recoverCommitments, "commitment", nil,
		"a hex commitment matched by position to --share (repeat once per share)")
	recoverCmd.Flags().IntVar(&recoverThreshold, "threshold", 0, "expected recovery threshold t")
	recoverCmd.Flags().BoolVar(&recoverAllowUnknownThold, "allow-unknown-threshold", false,
		"reconstruct without a known threshold, combining whatever shares are supplied")
}
