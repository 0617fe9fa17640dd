package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jpfielding/cgbi.go/pkg/cgbi"
	"github.com/jpfielding/cgbi.go/pkg/cgbi/chunk"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect cobra command
func NewInspectCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a PNG's format and chunk layout",
		Long:  "Classifies a file as standard PNG / CgBI PNG / not a PNG and lists its chunks with lengths and stored CRCs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")
			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}
			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", filePath, err)
			}
			return runInspect(data)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "PNG file path to inspect")

	return cmd
}

func runInspect(data []byte) error {
	switch {
	case cgbi.IsCgbiPNG(data):
		fmt.Println("Format: CgBI PNG (Apple variant)")
	case cgbi.IsStandardPNG(data):
		fmt.Println("Format: standard PNG")
	default:
		fmt.Println("Format: not a PNG")
		return nil
	}

	fmt.Println("\n=== Chunks ===")
	r := chunk.NewReaderAt(data, 8)
	for r.More() {
		c := chunk.Decode(r)
		fmt.Printf("%-4s length=%-8d crc=%08X\n", c.Type, c.Length, c.CRC)
		if c.Type == chunk.TypeIHDR {
			ihdr, err := chunk.ParseIHDR(c.Payload)
			if err != nil {
				fmt.Printf("     bad IHDR payload: %v\n", err)
				continue
			}
			fmt.Printf("     %dx%d bitDepth=%d colorType=%d interlace=%d\n",
				ihdr.Width, ihdr.Height, ihdr.BitDepth, ihdr.ColorType, ihdr.InterlaceMethod)
		}
		if c.Type == chunk.TypeIEND {
			break
		}
	}
	return nil
}
