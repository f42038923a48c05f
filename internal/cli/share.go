package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coldshard/coldshard/internal/commitment"
	"github.com/coldshard/coldshard/internal/mnemonic"
	"github.com/coldshard/coldshard/internal/output"
	"github.com/coldshard/coldshard/internal/secure"
	"github.com/coldshard/coldshard/internal/shamir"
)

var (
	sharePhrase        string
	shareN             int
	shareT             int
	shareDeterministic bool
	shareSession       string
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Split a secret phrase into n threshold shares",
	Long: `Share splits the secret behind a mnemonic phrase into n mnemonic-phrase
shares, any t of which reconstruct it. Each share line has the wire form
"{index}: {words}" and is printed with its commitment so holders can verify
a share without attempting recovery.

When --phrase is omitted, the phrase is read from a hidden terminal prompt.
--deterministic derives the polynomial coefficients from the secret, t, and
--session instead of system randomness, so the same inputs always reproduce
the same shares.`,
	Example: `  coldshard share --phrase "..." --n 5 --t 3
  coldshard share --n 5 --t 3 --deterministic --session audit-2026`,
	RunE: runShare,
}

func runShare(cmd *cobra.Command, _ []string) error {
	phrase := sharePhrase
	if phrase == "" {
		line, err := promptMnemonicFn()
		if err != nil {
			return err
		}
		phrase = line
	}

	secret, err := mnemonic.Decode(phrase)
	if err != nil {
		return err
	}
	defer secure.Zero(secret)

	mode := shamir.ModeRandom
	if shareDeterministic {
		mode = shamir.ModeDeterministic
	}

	shares, err := shamir.Split(shamir.SplitParams{
		Secret:    secret,
		N:         shareN,
		T:         shareT,
		Mode:      mode,
		SessionID: shareSession,
	})
	if err != nil {
		return err
	}

	type shareOut struct {
		Index      int    `json:"index"`
		Phrase     string `json:"phrase"`
		Commitment string `json:"commitment"`
	}
	out := make([]shareOut, 0, len(shares))
	text := ""
	for i, s := range shares {
		words, wErr := s.Words()
		if wErr != nil {
			return wErr
		}
		line := strconv.Itoa(s.Index) + ": " + joinWords(words)
		out = append(out, shareOut{
			Index:      s.Index,
			Phrase:     line,
			Commitment: commitment.Compute(s.Index, words),
		})
		if i > 0 {
			text += "\n"
		}
		text += line + "\n  commitment: " + commitment.Compute(s.Index, words)
	}

	if formatter != nil && formatter.Format() == output.FormatJSON {
		return formatter.Print(out)
	}
	cmd.Println(text)
	return nil
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	shareCmd.Flags().StringVar(&sharePhrase, "phrase", "", "secret mnemonic phrase (prompted if omitted)")
	shareCmd.Flags().IntVar(&shareN, "n", 0, "number of shares to produce (required, 1..255)")
	shareCmd.Flags().IntVar(&shareT, "t", 0, "recovery threshold (required, 1..n)")
	shareCmd.Flags().BoolVar(&shareDeterministic, "deterministic", false,
		"derive share coefficients deterministically instead of from system randomness")
	shareCmd.Flags().StringVar(&shareSession, "session", "", "session id mixed into deterministic coefficient derivation")
	_ = shareCmd.MarkFlagRequired("n")
	_ = shareCmd.MarkFlagRequired("t")
}
