package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zoobzio/transcode"
)

func newEncodeCmd(a *app) *cobra.Command {
	var flags struct {
		codec string
		mode  string
		out   string
	}

	cmd := &cobra.Command{
		Use:   "encode FILE",
		Short: "Encode a file with one codec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := transcode.ParseKind(flags.codec)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if kind == transcode.KindQR && len(data) > transcode.RecommendedQRInput {
				a.log.Warn("input is above the recommended QR input size", "size", len(data), "recommended", transcode.RecommendedQRInput)
			}

			resp, err := a.svc.Encode(cmd.Context(), transcode.EncodeRequest{
				Filename: filepath.Base(args[0]),
				Data:     data,
				Codec:    kind,
				Mode:     transcode.MIDIMode(flags.mode),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			path := flags.out
			if path == "" {
				path = filepath.Join(filepath.Dir(args[0]), resp.Filename)
			}
			if err := os.WriteFile(path, resp.Data, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			printWritten(out, path, len(resp.Data))
			printMetadata(out, resp.Metadata)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.codec, "codec", "", "Codec: prime, midi, or qr (required)")
	f.StringVar(&flags.mode, "mode", "", "MIDI mode: raw or musical (default from config)")
	f.StringVarP(&flags.out, "output", "o", "", "Output path (default encoded_<name><ext> next to FILE)")
	_ = cmd.MarkFlagRequired("codec")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var flags struct {
		codec string
		text  bool
		out   string
	}

	cmd := &cobra.Command{
		Use:   "decode ARTIFACT",
		Short: "Decode an artifact and restore the original file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := transcode.ParseKind(flags.codec)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read artifact: %w", err)
			}

			var (
				name    string
				payload []byte
				meta    map[string]string
			)
			if flags.text {
				f, err := decodeImageText(a.registry, kind, string(data))
				if err != nil {
					return err
				}
				name, payload = f.Filename, f.Payload
				meta = map[string]string{transcode.MetaDecodedHash: a.svc.Digest(f.Payload).String()}
			} else {
				resp, err := a.svc.Decode(cmd.Context(), transcode.DecodeRequest{Data: data, Codec: kind})
				if err != nil {
					return err
				}
				name, payload, meta = resp.Filename, resp.Data, resp.Metadata
			}

			path, err := writeFile(flags.out, name, payload)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printWritten(out, path, len(payload))
			printMetadata(out, meta)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.codec, "codec", "", "Codec: prime, midi, or qr (required)")
	f.BoolVar(&flags.text, "text", false, "ARTIFACT holds a base64 or data URL image (qr only)")
	f.StringVarP(&flags.out, "output", "o", ".", "Directory for the restored file")
	_ = cmd.MarkFlagRequired("codec")
	return cmd
}

// decodeImageText decodes a QR image supplied as text.
func decodeImageText(r *transcode.Registry, kind transcode.Kind, text string) (*transcode.Frame, error) {
	if kind != transcode.KindQR {
		return nil, fmt.Errorf("--text is only supported for qr, got %s", kind)
	}
	c, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}
	qr, ok := c.(*transcode.QRCodec)
	if !ok {
		return nil, fmt.Errorf("qr codec does not accept text input")
	}
	return qr.DecodeImageText(text)
}
