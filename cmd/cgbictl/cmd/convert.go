package cmd

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/jpfielding/cgbi.go/pkg/cgbi"
	"github.com/jpfielding/cgbi.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewConvertCmd creates the convert cobra command
func NewConvertCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "convert a PNG between standard and CgBI form",
		Long:  "Detects whether the input is a standard or CgBI PNG and rewrites it as the other.",
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, _ := cmd.Flags().GetString("uri")
			if uri == "" && len(args) > 0 {
				uri = args[0]
			}
			if uri == "" {
				return fmt.Errorf("input is required. Use --uri flag or provide as argument")
			}

			data, err := readInput(ctx, cmd, uri)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "converting", "bytes", len(data), "cgbi", cgbi.IsCgbiPNG(data))
			out, err := cgbi.Convert(data)
			if err != nil {
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" || outPath == "-" {
				_, err = os.Stdout.Write(out)
				return err
			}
			if err := util.WriteFileAtomic(outPath, out, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			slog.InfoContext(ctx, "wrote", "path", outPath, "bytes", len(out))
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "", "PNG to convert (path, '-' for stdin, or http(s) URL)")
	pf.StringP("out", "o", "", "output path ('-' or empty for stdout)")
	pf.Bool("verbose", false, "dump http request/response headers")
	return cmd
}

// readInput resolves the uri argument the way the rest of the tooling does:
// '-' reads stdin, http(s) fetches, anything else is a file path.
func readInput(ctx context.Context, cmd *cobra.Command, uri string) ([]byte, error) {
	uri = strings.TrimPrefix(uri, "file://")
	var in io.Reader
	switch {
	case uri == "-":
		in = os.Stdin
	case strings.HasPrefix(uri, "http"):
		cl := &http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %v", err)
		}
		resp, err := cl.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to download: %v", err)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			reqDump, _ := httputil.DumpRequest(req, true)
			os.Stderr.Write(reqDump)
			resDump, _ := httputil.DumpResponse(resp, false)
			os.Stderr.Write(resDump)
		}
		in = resp.Body
		defer resp.Body.Close()
	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %v", err)
		}
		in = f
		defer f.Close()
	}
	return io.ReadAll(in)
}
