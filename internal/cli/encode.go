package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coldshard/coldshard/internal/entropy"
	"github.com/coldshard/coldshard/internal/mnemonic"
	"github.com/coldshard/coldshard/internal/secure"
	"github.com/coldshard/coldshard/pkg/errs"
)

var (
	encodeHex     string
	encodeDice    string
	encodeCards   string
	encodeIndices string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode raw entropy into a mnemonic phrase",
	Long: `Encode converts entropy given in exactly one of four input formats into a
mnemonic phrase: a hex string (--hex), a sequence of dice rolls 1-6
(--dice), a space-separated sequence of two-character playing cards like
"AS TD" (--cards), or a comma-separated list of word indices 0-2047
(--indices). Each format's bit contribution is reduced to the largest
allowed mnemonic length (128, 160, 192, 224, or 256 bits) it covers.`,
	Example: `  coldshard encode --hex b270c0bfd7cd91625ba9eaf1a9d26229
  coldshard encode --dice 123456123456123456123456123456123456123456123456123456
  coldshard encode --cards "AS TD 2C 9H ..."
  coldshard encode --indices 2044,713,852,439,808,1796,433,972,406,1480,65,1681`,
	RunE: runEncode,
}

func runEncode(cmd *cobra.Command, _ []string) error {
	src, err := selectEntropySource()
	if err != nil {
		return err
	}

	raw, err := src.Bits()
	if err != nil {
		return err
	}
	defer secure.Zero(raw)

	phrase, err := mnemonic.EncodeString(raw)
	if err != nil {
		return err
	}

	return renderResult(cmd, map[string]string{"mnemonic": phrase}, phrase)
}

func selectEntropySource() (entropy.Source, error) {
	provided := 0
	var src entropy.Source

	if encodeHex != "" {
		provided++
		src = entropy.Hex{Input: encodeHex}
	}
	if encodeDice != "" {
		provided++
		src = entropy.Dice{Input: encodeDice}
	}
	if encodeCards != "" {
		provided++
		src = entropy.Cards{Input: encodeCards}
	}
	if encodeIndices != "" {
		provided++
		values, err := parseIndicesList(encodeIndices)
		if err != nil {
			return nil, err
		}
		src = entropy.Indices{Values: values}
	}

	if provided != 1 {
		return nil, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{
			"reason": "exactly one of --hex, --dice, --cards, --indices is required",
		})
	}
	return src, nil
}

func parseIndicesList(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{"index": f})
		}
		values = append(values, v)
	}
	return values, nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	encodeCmd.Flags().StringVar(&encodeHex, "hex", "", "entropy as a hex string")
	encodeCmd.Flags().StringVar(&encodeDice, "dice", "", "entropy as a sequence of dice rolls (digits 1-6)")
	encodeCmd.Flags().StringVar(&encodeCards, "cards", "", `entropy as space-separated cards, e.g. "AS TD 2C"`)
	encodeCmd.Flags().StringVar(&encodeIndices, "indices", "", "entropy as comma-separated word indices 0-2047")
}
