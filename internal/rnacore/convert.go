package rnacore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
	"github.com/spf13/cobra"
)

// ConvertCmd converts between dot-bracket notation and pair lists
func ConvertCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		cmd.Help()
		stderr.Fatalln("\nno structure passed")
	}

	out, err := convert(args[0])
	if err != nil {
		stderr.Fatalln(err)
	}
	fmt.Println(out)
}

// convert turns a dot-bracket structure into a comma separated, 0-indexed
// pair list, ex: "((..))" to "5,4,-1,-1,1,0". A pair list is turned into
// dot-bracket notation.
func convert(structure string) (string, error) {
	structure = strings.TrimSpace(structure)
	if structure == "" {
		return "", fmt.Errorf("empty structure")
	}

	if !strings.ContainsAny(structure, "0123456789") {
		pairs, err := rna.ParseDotBracket(structure)
		if err != nil {
			return "", err
		}
		fields := make([]string, len(pairs))
		for i, j := range pairs {
			fields[i] = strconv.Itoa(j)
		}
		return strings.Join(fields, ","), nil
	}

	pairs, err := parsePairList(structure)
	if err != nil {
		return "", err
	}
	if err := pairs.Validate(len(pairs)); err != nil {
		return "", err
	}
	return pairs.DotBracket(), nil
}

// parsePairList parses a comma or space separated pair list
func parsePairList(s string) (rna.PairList, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	pairs := make(rna.PairList, len(fields))
	for i, f := range fields {
		j, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse partner %q of position %d: %w", f, i, rna.ErrMalformed)
		}
		pairs[i] = j
	}
	return pairs, nil
}
