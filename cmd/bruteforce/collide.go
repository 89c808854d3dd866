package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ygrebnov/bruteforce/internal/workload"
)

func newCollideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collide",
		Short: "Find a collision of a truncated BLAKE2b hash",
		Long: fmt.Sprintf(`Runs a distinguished-point hash chain search for two inputs with the same
%d-byte BLAKE2b output. Segments end on outputs starting with %d zero bytes.`,
			workload.ChainWidth, workload.DistinguishedPrefix),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := workload.NewChainCollision()

			began := time.Now()
			pair, found, err := search(cmd.Context(), a, workload.StartChain, cc.Check)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintf(out, "no collision found within %s (%d segments)\n", a.settings.timeout, cc.Segments())
				return nil
			}

			x, y, h, ok := workload.FindCollision(pair)
			if !ok {
				return errors.New("colliding segments found but the collision could not be located")
			}
			fmt.Fprintf(out, "segments: %s %s\ncollision: %s %s -> %s\nelapsed: %s\n",
				hex.EncodeToString(pair.First[:]), hex.EncodeToString(pair.Second[:]),
				hex.EncodeToString(x[:]), hex.EncodeToString(y[:]), hex.EncodeToString(h[:]),
				elapsedSince(began))
			return nil
		},
	}
}
