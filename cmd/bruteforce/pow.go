package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ygrebnov/bruteforce/internal/workload"
)

func newPowCmd(a *app) *cobra.Command {
	var difficulty int
	cmd := &cobra.Command{
		Use:   "pow",
		Short: "Find a proof-of-work nonce",
		Long: `Searches a 64-bit nonce whose BLAKE2b-512 digest over the little-endian
nonce starts with --difficulty zero bytes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pow, err := workload.NewProofOfWork(difficulty)
			if err != nil {
				return err
			}

			began := time.Now()
			nonce, found, err := search(cmd.Context(), a, pow.Space().Start, pow.Check())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintf(out, "no nonce found within %s\n", a.settings.timeout)
				return nil
			}
			digest := workload.Digest(nonce)
			fmt.Fprintf(out, "nonce: %d\ndigest: %s\nelapsed: %s\n",
				nonce, hex.EncodeToString(digest[:]), elapsedSince(began))
			return nil
		},
	}
	cmd.Flags().IntVar(&difficulty, "difficulty", 3, "number of leading zero digest bytes")
	return cmd
}
