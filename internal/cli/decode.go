package cli

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coldshard/coldshard/internal/mnemonic"
	"github.com/coldshard/coldshard/internal/secure"
	"github.com/coldshard/coldshard/pkg/errs"
)

var (
	decodePhrase string
	decodeFormat string
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a mnemonic phrase back to its raw form",
	Long: `Decode validates a mnemonic phrase against the wordlist and checksum,
then prints its payload either as hex bytes (--format hex, the default) or
as the list of 11-bit word indices that compose it (--format indices).

When --phrase is omitted, the phrase is read from a hidden terminal prompt.`,
	Example: `  coldshard decode --phrase "raven maid copper question suit raise huge diary vast excess obtain fantasy"
  coldshard decode --phrase "..." --format indices`,
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, _ []string) error {
	phrase := decodePhrase
	if phrase == "" {
		line, err := promptMnemonicFn()
		if err != nil {
			return err
		}
		phrase = line
	}

	raw, err := mnemonic.Decode(phrase)
	if err != nil {
		return err
	}
	defer secure.Zero(raw)

	switch decodeFormat {
	case "", "hex":
		encoded := hex.EncodeToString(raw)
		return renderResult(cmd, map[string]string{"hex": encoded}, encoded)
	case "indices":
		words := strings.Fields(strings.TrimSpace(phrase))
		indices := make([]int, len(words))
		for i, w := range words {
			idx, found := mnemonic.IndexOf(w)
			if !found {
				return errs.WithDetails(errs.ErrInvalidWordlist, map[string]string{"word": w})
			}
			indices[i] = idx
		}
		return renderResult(cmd, map[string][]int{"indices": indices}, joinInts(indices))
	default:
		return errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{
			"reason": "--format must be hex or indices", "format": decodeFormat,
		})
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	decodeCmd.Flags().StringVar(&decodePhrase, "phrase", "", "mnemonic phrase to decode (prompted if omitted)")
	decodeCmd.Flags().StringVar(&decodeFormat, "format", "hex", "output format: hex or indices")
}
