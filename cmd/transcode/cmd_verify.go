package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zoobzio/transcode"
)

// errMismatch is returned by verify so main exits 1 without printing twice.
var errMismatch = errors.New("digests do not match")

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify HASH_A HASH_B",
		Short: "Compare two hex digests",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := a.svc.Verify(cmd.Context(), args[0], args[1])
			out := cmd.OutOrStdout()
			switch {
			case v.Verified && v.Match:
				green.Fprintln(out, "✓ MATCH")
				return nil
			case !v.Verified:
				yellow.Fprintln(out, "? UNVERIFIED: inputs are not 64-character hex digests")
			default:
				red.Fprintln(out, "✗ MISMATCH")
			}
			return errMismatch
		},
	}
}

func newDigestCmd(a *app) *cobra.Command {
	var algo string

	cmd := &cobra.Command{
		Use:   "digest FILE...",
		Short: "Print the 256-bit digest of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hasher transcode.Hasher
			if algo == "" {
				hasher, _ = a.cfg.Hasher()
			} else {
				h, err := transcode.NewHasher(transcode.DigestAlgo(algo))
				if err != nil {
					return err
				}
				hasher = h
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				fmt.Fprintf(out, "%s  %s\n", hasher.Sum(data), filepath.Base(path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&algo, "algo", "", "Digest: sha256, blake2b, or sha3 (default from config)")
	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the registered codecs and digest algorithm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := a.svc.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Service: %s %s\n", info.Name, version)
			fmt.Fprintf(out, "Digest:  %s\n", info.DigestAlgo)
			fmt.Fprintf(out, "Codecs:\n")
			for _, k := range info.Codecs {
				fmt.Fprintf(out, "  %-6s %s (%s)\n", k, k.ContentType(), k.Extension())
			}
			fmt.Fprintf(out, "QR input: %d bytes recommended, %d base64 characters max\n",
				transcode.RecommendedQRInput, transcode.MaxQRCapacity)
			return nil
		},
	}
}
