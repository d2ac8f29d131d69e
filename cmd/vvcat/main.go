// Command vvcat converts a valuable-value document between the
// compact and human-readable encodings, and can lint a document for
// canonicity without converting it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/synadia-labs/valuable-value-go/compact"
	"github.com/synadia-labs/valuable-value-go/human"
	"github.com/synadia-labs/valuable-value-go/value"
)

// CLI defines the vvcat command-line interface.
//
//   - --from/--to select the encoding on each side of the conversion;
//     the defaults convert compact input to human output, and giving
//     the same encoding on both sides reformats a document in its own
//     encoding ("pretty-print").
//   - --canonic makes compact-format input decode in canonic mode,
//     rejecting non-minimal widths, duplicate map keys, and
//     non-normalized floats instead of silently accepting them.
//   - --pretty pretty-prints human output with the given indent,
//     instead of the single-line canonical spelling.
type CLI struct {
	In      string `short:"i" help:"Input file (default: stdin)"`
	Out     string `short:"o" help:"Output file (default: stdout)"`
	From    string `help:"Input encoding: compact or human" enum:"compact,human" default:"compact"`
	To      string `help:"Output encoding: compact or human" enum:"compact,human" default:"human"`
	Canonic bool   `help:"Require canonic compact input"`
	Pretty  string `help:"Pretty-print human output with this indent (e.g. \"  \")"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("vvcat"),
		kong.Description("Convert or lint a valuable-value document."),
	)
	if err := run(&cli); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli *CLI) error {
	in := os.Stdin
	if cli.In != "" {
		f, err := os.Open(cli.In)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	v, err := decodeInput(raw, cli.From, cli.Canonic)
	if err != nil {
		return fmt.Errorf("decode %s input: %w", cli.From, err)
	}

	out := os.Stdout
	if cli.Out != "" {
		f, err := os.Create(cli.Out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	return writeOutput(out, v, cli.To, cli.Pretty)
}

func decodeInput(raw []byte, from string, canonic bool) (value.Value, error) {
	switch from {
	case "compact":
		if canonic {
			return compact.DecodeCanonic(raw)
		}
		return compact.Decode(raw)
	case "human":
		return human.Decode(string(raw))
	default:
		return value.Value{}, fmt.Errorf("unknown input encoding %q", from)
	}
}

func writeOutput(w io.Writer, v value.Value, to string, pretty string) error {
	switch to {
	case "compact":
		_, err := w.Write(compact.Marshal(v))
		return err
	case "human":
		var text string
		if pretty != "" {
			text = human.EncodePretty(v, pretty)
		} else {
			text = human.Encode(v)
		}
		_, err := fmt.Fprintln(w, text)
		return err
	default:
		return fmt.Errorf("unknown output encoding %q", to)
	}
}
