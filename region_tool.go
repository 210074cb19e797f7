package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/astei/nbtedit/anvil"
	"github.com/astei/nbtedit/nbt"
)

func loadRegion(path string) (*anvil.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return anvil.Load(data)
}

func parseCompression(name string) (nbt.Compression, error) {
	switch name {
	case "none":
		return nbt.CompressionNone, nil
	case "gzip":
		return nbt.CompressionGzip, nil
	case "zlib":
		return nbt.CompressionZlib, nil
	}
	return 0, fmt.Errorf("unknown compression %q", name)
}

func chunksCommand() *cli.Command {
	return &cli.Command{
		Name:      "chunks",
		Usage:     "list the chunks present in a region file",
		ArgsUsage: "<region>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("need exactly one region file")
			}
			region, err := loadRegion(c.Args().Get(0))
			if err != nil {
				return err
			}
			if err := region.Validate(); err != nil {
				slog.Warn("region header has problems", "err", err)
			}
			for _, coord := range region.PresentChunks() {
				stamp := "-"
				if ts := region.Timestamp(coord.X, coord.Z); !ts.IsZero() {
					stamp = ts.UTC().Format(time.RFC3339)
				}
				fmt.Printf("(%2d,%2d)  %s\n", coord.X, coord.Z, stamp)
			}
			return nil
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "copy one chunk out of a region file into a standalone NBT file",
		ArgsUsage: "<region>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "x", Required: true, Usage: "chunk x coordinate within the region"},
			&cli.IntFlag{Name: "z", Required: true, Usage: "chunk z coordinate within the region"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (defaults to chunk.X.Z.dat)"},
			&cli.StringFlag{Name: "compression", Value: "gzip", Usage: "output compression, none, gzip or zlib"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("need exactly one region file")
			}
			comp, err := parseCompression(c.String("compression"))
			if err != nil {
				return err
			}
			region, err := loadRegion(c.Args().Get(0))
			if err != nil {
				return err
			}

			x, z := c.Int("x"), c.Int("z")
			doc, err := region.ReadChunk(x, z)
			if err != nil {
				return err
			}
			data, err := nbt.WriteDocument(doc, comp)
			if err != nil {
				return err
			}

			out := c.String("out")
			if out == "" {
				out = fmt.Sprintf("chunk.%d.%d.dat", x, z)
			}
			return os.WriteFile(out, data, 0644)
		},
	}
}

func putCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "store an NBT file as a chunk in a region, creating the region if needed",
		ArgsUsage: "<region> <chunk file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "x", Required: true, Usage: "chunk x coordinate within the region"},
			&cli.IntFlag{Name: "z", Required: true, Usage: "chunk z coordinate within the region"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("need a region file and a chunk file")
			}
			regionPath := c.Args().Get(0)

			var region *anvil.Region
			data, err := os.ReadFile(regionPath)
			switch {
			case err == nil:
				region, err = anvil.Load(data)
				if err != nil {
					return err
				}
			case errors.Is(err, os.ErrNotExist):
				region = anvil.New()
			default:
				return err
			}

			raw, err := os.ReadFile(c.Args().Get(1))
			if err != nil {
				return err
			}
			doc, _, err := nbt.ReadDocument(raw)
			if err != nil {
				return err
			}

			if err := region.WriteChunk(c.Int("x"), c.Int("z"), doc); err != nil {
				return err
			}
			return os.WriteFile(regionPath, region.Data(), 0644)
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "check a region file's header and decode every chunk",
		ArgsUsage: "<region>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("need exactly one region file")
			}
			region, err := loadRegion(c.Args().Get(0))
			if err != nil {
				return err
			}

			headerErr := region.Validate()
			if headerErr != nil {
				fmt.Printf("header: %v\n", headerErr)
			}

			ok, corrupt := 0, 0
			for _, coord := range region.PresentChunks() {
				_, err := region.ReadChunk(coord.X, coord.Z)
				switch {
				case err == nil:
					ok++
				case errors.Is(err, anvil.ErrNoChunk):
					corrupt++
					fmt.Printf("chunk (%d,%d): present in the table but unreadable\n", coord.X, coord.Z)
				default:
					corrupt++
					fmt.Println(err)
				}
			}

			fmt.Printf("%d chunks ok, %d corrupt\n", ok, corrupt)
			if corrupt > 0 || headerErr != nil {
				return errors.New("verification failed")
			}
			return nil
		},
	}
}
