package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/astei/nbtedit/nbt"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print an NBT file as a tree or as YAML",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "tree",
				Usage: "output format, tree or yaml",
			},
			&cli.BoolFlag{
				Name:  "network",
				Usage: "decode network framing, which carries no root name",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("need exactly one NBT file")
			}
			data, err := os.ReadFile(c.Args().Get(0))
			if err != nil {
				return err
			}

			var doc *nbt.Document
			if c.Bool("network") {
				plain, _, err := nbt.Decompress(data)
				if err != nil {
					return err
				}
				doc, err = nbt.DecodeNetworkDocument(plain)
				if err != nil {
					return err
				}
			} else {
				doc, _, err = nbt.ReadDocument(data)
				if err != nil {
					return err
				}
			}

			switch c.String("format") {
			case "tree":
				fmt.Print(renderTree(doc))
			case "yaml":
				out, err := renderYAML(doc)
				if err != nil {
					return err
				}
				fmt.Print(string(out))
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
			return nil
		},
	}
}

// renderTree formats a document in the classic indented NBT dump style,
// one tag per line.
func renderTree(doc *nbt.Document) string {
	var b strings.Builder
	writeTreeTag(&b, 0, doc.Name, doc.Root)
	return b.String()
}

func writeTreeTag(b *strings.Builder, depth int, name string, t nbt.Tag) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString(t.Type().String())
	if name != "" {
		fmt.Fprintf(b, "('%s')", name)
	}
	b.WriteString(": ")

	switch v := t.(type) {
	case nbt.Byte, nbt.Short, nbt.Int, nbt.Long:
		fmt.Fprintf(b, "%d\n", v)
	case nbt.Float, nbt.Double:
		fmt.Fprintf(b, "%g\n", v)
	case nbt.String:
		fmt.Fprintf(b, "'%s'\n", string(v))
	case nbt.ByteArray:
		fmt.Fprintf(b, "[%d bytes]\n", len(v))
	case nbt.IntArray:
		fmt.Fprintf(b, "[%d ints]\n", len(v))
	case nbt.LongArray:
		fmt.Fprintf(b, "[%d longs]\n", len(v))
	case *nbt.List:
		fmt.Fprintf(b, "%d entries of type %v\n", v.Len(), v.ElementType())
		for _, item := range v.Items {
			writeTreeTag(b, depth+1, "", item)
		}
	case *nbt.Compound:
		fmt.Fprintf(b, "%d entries\n", v.Len())
		for _, n := range v.Names() {
			item, _ := v.Get(n)
			writeTreeTag(b, depth+1, n, item)
		}
	}
}

// renderYAML formats a document as a YAML mapping keyed by the root name.
// Nameless network documents render the root bare. Compound keys keep their
// stored order, which is why this builds yaml.Node trees instead of maps.
func renderYAML(doc *nbt.Document) ([]byte, error) {
	root := yamlNode(doc.Root)
	if doc.Name == "" {
		return yaml.Marshal(root)
	}
	named := &yaml.Node{Kind: yaml.MappingNode}
	named.Content = append(named.Content, scalarNode(doc.Name), root)
	return yaml.Marshal(named)
}

func yamlNode(t nbt.Tag) *yaml.Node {
	switch v := t.(type) {
	case nbt.Byte:
		return scalarNode(strconv.FormatInt(int64(v), 10))
	case nbt.Short:
		return scalarNode(strconv.FormatInt(int64(v), 10))
	case nbt.Int:
		return scalarNode(strconv.FormatInt(int64(v), 10))
	case nbt.Long:
		return scalarNode(strconv.FormatInt(int64(v), 10))
	case nbt.Float:
		return scalarNode(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case nbt.Double:
		return scalarNode(strconv.FormatFloat(float64(v), 'g', -1, 64))
	case nbt.String:
		// The str tag forces quoting when the value would otherwise parse
		// as a number or boolean.
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}
	case nbt.ByteArray:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!binary",
			Value: base64.StdEncoding.EncodeToString(v),
		}
	case nbt.IntArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, n := range v {
			seq.Content = append(seq.Content, scalarNode(strconv.FormatInt(int64(n), 10)))
		}
		return seq
	case nbt.LongArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, n := range v {
			seq.Content = append(seq.Content, scalarNode(strconv.FormatInt(n, 10)))
		}
		return seq
	case *nbt.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v.Items {
			seq.Content = append(seq.Content, yamlNode(item))
		}
		return seq
	case *nbt.Compound:
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range v.Names() {
			item, _ := v.Get(name)
			m.Content = append(m.Content, scalarNode(name), yamlNode(item))
		}
		return m
	}
	return scalarNode("")
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}
