package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jcorbin/goforth/xorcism"
)

func newMungeCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "munge [IN [OUT]]",
		Short: "XOR a stream against a repeated key",
		Long: `XOR a stream against a repeated key.

Munging is its own inverse: munge a program once to obscure it, then run it
with "goforth --key KEY FILE" or munge it again to recover it. IN and OUT
default to standard input and output; "-" also means either.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (rerr error) {
			if key == "" {
				return errors.New("munge: a non-empty --key is required")
			}

			in := cmd.InOrStdin()
			if len(args) > 0 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "munge")
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			if len(args) > 1 && args[1] != "-" {
				f, err := os.Create(args[1])
				if err != nil {
					return errors.Wrap(err, "munge")
				}
				defer func() {
					if cerr := f.Close(); rerr == nil {
						rerr = cerr
					}
				}()
				out = f
			}

			_, err := io.Copy(xorcism.New([]byte(key)).Writer(out), in)
			return errors.Wrap(err, "munge")
		},
	}

	cmd.Flags().StringVar(&key, "key", os.Getenv("GOFORTH_KEY"), "key to munge with")
	return cmd
}
