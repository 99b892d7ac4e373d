package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/formatconv"
	"github.com/erraggy/formatconv/compare"
	"github.com/erraggy/formatconv/converrors"
	"github.com/erraggy/formatconv/convert"
	"github.com/erraggy/formatconv/formats"
	"github.com/erraggy/formatconv/internal/cliutil"
	"github.com/erraggy/formatconv/internal/mcpserver"
	"github.com/erraggy/formatconv/internal/options"
	"github.com/erraggy/formatconv/registry"
)

// Exit codes: 0 success, 1 failed conversion or bad input,
// 2 unsupported conversion pair.
const (
	exitFailure     = 1
	exitUnsupported = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitFailure)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("formatconv v%s\n", formatconv.Version())
	case "help", "-h", "--help":
		printUsage()
	case "convert":
		exitOnError(handleConvert(os.Args[2:]))
	case "list":
		exitOnError(handleList(os.Args[2:]))
	case "detect":
		exitOnError(handleDetect(os.Args[2:]))
	case "compare":
		exitOnError(handleCompare(os.Args[2:]))
	case "mcp":
		exitOnError(handleMCP(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(exitFailure)
	}
}

// exitOnError reports err and exits with the taxonomy-mapped code.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, converrors.ErrUnsupportedConversion) {
		os.Exit(exitUnsupported)
	}
	os.Exit(exitFailure)
}

// buildRegistry creates the registry with the full built-in catalog.
// A registration failure is a programming error and halts the process.
func buildRegistry() *registry.Registry {
	reg := registry.New()
	if err := formats.RegisterAll(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(exitFailure)
	}
	return reg
}

// convertFlags contains flags for the convert command
type convertFlags struct {
	source    string
	target    string
	file      string
	output    string
	quality   int
	uppercase bool
	prefix    bool
	width     int
	delimiter string
	indent    int
	maxSize   int64
	quiet     bool
}

func setupConvertFlags() (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &convertFlags{}

	fs.StringVar(&flags.source, "s", "", "source format (required)")
	fs.StringVar(&flags.source, "source", "", "source format (required)")
	fs.StringVar(&flags.target, "t", "", "target format (required)")
	fs.StringVar(&flags.target, "target", "", "target format (required)")
	fs.StringVar(&flags.file, "file", "", "read the input value from a file ('-' for stdin)")
	fs.StringVar(&flags.output, "o", "", "write the converted value to a file")
	fs.StringVar(&flags.output, "output", "", "write the converted value to a file")
	fs.IntVar(&flags.quality, "quality", 0, "JPEG quality 1..100 (image conversions)")
	fs.BoolVar(&flags.uppercase, "uppercase", false, "uppercase hex numeral output (number conversions)")
	fs.BoolVar(&flags.prefix, "prefix", false, "add the radix prefix to numeral output (number conversions)")
	fs.IntVar(&flags.width, "width", 0, "zero-pad numeral output to this many digits (number conversions)")
	fs.StringVar(&flags.delimiter, "delimiter", "", "CSV field delimiter (data conversions)")
	fs.IntVar(&flags.indent, "indent", 0, "JSON output indentation in spaces (data conversions)")
	fs.Int64Var(&flags.maxSize, "max-size", 0, "maximum input size in bytes (0 = unlimited)")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress conversion issues on stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: formatconv convert -s <source> -t <target> [flags] [value]\n\n")
		_, _ = fmt.Fprintf(output, "Convert a value between formats. The value comes from the positional\nargument or from --file ('-' reads stdin).\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  formatconv convert -s text -t base64 'Hello World'\n")
		_, _ = fmt.Fprintf(output, "  formatconv convert -s decimal -t binary 42\n")
		_, _ = fmt.Fprintf(output, "  formatconv convert -s text -t sha256 'password123'\n")
		_, _ = fmt.Fprintf(output, "  formatconv convert -s png -t jpeg --quality 95 --file in.png -o out.jpg\n")
		_, _ = fmt.Fprintf(output, "  formatconv convert -s json -t yaml --file api.json\n")
	}

	return fs, flags
}

func handleConvert(args []string) error {
	fs, flags := setupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if flags.source == "" || flags.target == "" {
		fs.Usage()
		return fmt.Errorf("convert command requires both -s and -t")
	}

	raw, err := readInput(fs, flags.file)
	if err != nil {
		return err
	}

	reg := buildRegistry()
	unit, err := reg.ResolvePair(flags.source, flags.target)
	if err != nil {
		return err
	}

	var value any
	if unit.Input() == registry.ShapeBytes {
		value = raw
	} else {
		value = string(raw)
	}

	d := convert.New(reg)
	d.MaxInputSize = flags.maxSize
	result, err := d.Convert(value, flags.source, flags.target, buildOptions(flags))
	if err != nil {
		return err
	}

	if !flags.quiet {
		for _, issue := range result.Issues {
			fmt.Fprintln(os.Stderr, issue.String())
		}
	}

	return writeOutput(result.Output, flags.output)
}

// readInput loads the value from the positional argument, a file, or stdin.
func readInput(fs *flag.FlagSet, file string) ([]byte, error) {
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("at most one value argument may be provided")
	}
	err := options.ValidateSingleInputSource(
		"an input value is required: pass it as an argument or via --file",
		"provide either a positional value or --file, not both",
		fs.NArg() == 1, file != "")
	if err != nil {
		return nil, err
	}

	switch {
	case file == "":
		return []byte(fs.Arg(0)), nil
	case file == "-":
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return raw, nil
	default:
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		return raw, nil
	}
}

// buildOptions translates CLI flags into converter options, passing only
// the ones the user actually set.
func buildOptions(flags *convertFlags) registry.Options {
	opts := registry.Options{}
	if flags.quality > 0 {
		opts[formats.OptQuality] = flags.quality
	}
	if flags.uppercase {
		opts[formats.OptUppercase] = true
	}
	if flags.prefix {
		opts[formats.OptPrefix] = true
	}
	if flags.width > 0 {
		opts[formats.OptWidth] = flags.width
	}
	if flags.delimiter != "" {
		opts[formats.OptDelimiter] = flags.delimiter
	}
	if flags.indent > 0 {
		opts[formats.OptIndent] = flags.indent
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// writeOutput sends the converted value to a file or stdout. Text output
// to stdout gains a trailing newline; byte output is written verbatim.
func writeOutput(output any, path string) error {
	var data []byte
	switch out := output.(type) {
	case string:
		data = []byte(out)
	case []byte:
		data = out
	default:
		return fmt.Errorf("unexpected output type %T", output)
	}

	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing stdout: %w", err)
	}
	if _, isText := output.(string); isText {
		cliutil.Writef(os.Stdout, "\n")
	}
	return nil
}

// listFlags contains flags for the list command
type listFlags struct {
	source string
	target string
	family string
}

func setupListFlags() (*flag.FlagSet, *listFlags) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	flags := &listFlags{}

	fs.StringVar(&flags.source, "s", "", "only list conversions from this format")
	fs.StringVar(&flags.source, "source", "", "only list conversions from this format")
	fs.StringVar(&flags.target, "t", "", "only list conversions to this format")
	fs.StringVar(&flags.target, "target", "", "only list conversions to this format")
	fs.StringVar(&flags.family, "family", "", "only list conversions in this family")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: formatconv list [flags]\n\n")
		_, _ = fmt.Fprintf(output, "List supported conversions, ordered by family then format pair.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  formatconv list\n")
		_, _ = fmt.Fprintf(output, "  formatconv list --family image\n")
		_, _ = fmt.Fprintf(output, "  formatconv list -s text\n")
	}

	return fs, flags
}

func handleList(args []string) error {
	fs, flags := setupListFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("list command takes no arguments")
	}

	reg := buildRegistry()
	source := registry.Normalize(flags.source)
	target := registry.Normalize(flags.target)

	count := 0
	for _, entry := range reg.Entries() {
		if source != "" && entry.Key.Source != source {
			continue
		}
		if target != "" && entry.Key.Target != target {
			continue
		}
		if flags.family != "" && entry.Family != flags.family {
			continue
		}
		count++
		marker := " "
		switch {
		case entry.OneWay:
			marker = "→"
		case entry.Derived:
			marker = "↩"
		case entry.Reversible:
			marker = "↔"
		}
		cliutil.Writef(os.Stdout, "%-10s %s %-24s %s\n", entry.Family, marker, entry.Key.String(), entry.Description)
	}
	cliutil.Writef(os.Stdout, "\n%d conversion(s)  (↔ reversible, ↩ derived, → one-way)\n", count)
	return nil
}

// detectFlags contains flags for the detect command
type detectFlags struct {
	file string
}

func setupDetectFlags() (*flag.FlagSet, *detectFlags) {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	flags := &detectFlags{}

	fs.StringVar(&flags.file, "file", "", "read the value from a file ('-' for stdin)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: formatconv detect [flags] [value]\n\n")
		_, _ = fmt.Fprintf(output, "Guess the format of a value. Candidates are printed from most to\nleast specific, restricted to formats the registry knows.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  formatconv detect '{\"name\":\"Widget\"}'\n")
		_, _ = fmt.Fprintf(output, "  formatconv detect --file image.png\n")
	}

	return fs, flags
}

func handleDetect(args []string) error {
	fs, flags := setupDetectFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	raw, err := readInput(fs, flags.file)
	if err != nil {
		return err
	}

	reg := buildRegistry()
	candidates := reg.DetectFormat(raw)
	if len(candidates) == 0 {
		return fmt.Errorf("no format candidates for the given value")
	}
	for i, c := range candidates {
		if i == 0 {
			cliutil.Writef(os.Stdout, "%s (best guess)\n", c)
			continue
		}
		cliutil.Writef(os.Stdout, "%s\n", c)
	}
	return nil
}

// compareFlags contains flags for the compare command
type compareFlags struct {
	fileA   string
	fileB   string
	diff    bool
	context int
	quiet   bool
}

func setupCompareFlags() (*flag.FlagSet, *compareFlags) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	flags := &compareFlags{}

	fs.StringVar(&flags.fileA, "file-a", "", "read the first text from a file")
	fs.StringVar(&flags.fileB, "file-b", "", "read the second text from a file")
	fs.BoolVar(&flags.diff, "diff", false, "print a unified diff of the two texts")
	fs.IntVar(&flags.context, "context", 3, "context lines around each diff hunk")
	fs.BoolVar(&flags.quiet, "quiet", false, "print only the similarity percentage")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: formatconv compare [flags] [text1] [text2]\n\n")
		_, _ = fmt.Fprintf(output, "Compare two texts and report their similarity. Each text comes from\na positional argument or from --file-a / --file-b.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  formatconv compare 'Hello World' 'Hello there World'\n")
		_, _ = fmt.Fprintf(output, "  formatconv compare --diff --file-a v1.txt --file-b v2.txt\n")
	}

	return fs, flags
}

func handleCompare(args []string) error {
	fs, flags := setupCompareFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	positional := fs.Args()
	source, positional, err := compareInput("first", flags.fileA, positional)
	if err != nil {
		return err
	}
	target, positional, err := compareInput("second", flags.fileB, positional)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("at most two text arguments may be provided")
	}

	c := compare.New()
	c.Context = flags.context
	result := c.Compare(source, target)

	cliutil.Writef(os.Stdout, "Similarity: %.2f%%\n", result.Similarity)
	if flags.quiet {
		return nil
	}
	if result.Identical {
		cliutil.Writef(os.Stdout, "Texts are identical.\n")
	}
	cliutil.Writef(os.Stdout, "First:  %d chars, %d words, %d lines\n",
		result.SourceStats.Chars, result.SourceStats.Words, result.SourceStats.Lines)
	cliutil.Writef(os.Stdout, "Second: %d chars, %d words, %d lines\n",
		result.TargetStats.Chars, result.TargetStats.Words, result.TargetStats.Lines)

	if flags.diff && !result.Identical {
		diff, err := c.UnifiedDiff(source, target)
		if err != nil {
			return fmt.Errorf("rendering diff: %w", err)
		}
		cliutil.Writef(os.Stdout, "\n%s", diff)
	}
	return nil
}

// compareInput resolves one side of a comparison from its file flag or
// the next positional argument, returning the remaining arguments.
func compareInput(side, file string, positional []string) (string, []string, error) {
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", positional, fmt.Errorf("reading %s text: %w", side, err)
		}
		return string(raw), positional, nil
	}
	if len(positional) > 0 {
		return positional[0], positional[1:], nil
	}
	return "", positional, fmt.Errorf("the %s text is required: pass it as an argument or via a file flag", side)
}

func handleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: formatconv mcp\n\n")
		_, _ = fmt.Fprintf(output, "Run the MCP server over stdio. Configuration comes from FORMATCONV_*\nenvironment variables; see the server instructions for the full list.\n")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx, buildRegistry())
}

// commands lists every valid subcommand for typo suggestions.
var commands = []string{"convert", "list", "detect", "compare", "mcp", "version", "help"}

// suggestCommand returns the closest command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range commands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`formatconv - Format Conversion Tools

Usage:
  formatconv <command> [options]

Commands:
  convert     Convert a value between formats
  list        List supported conversions
  detect      Guess the format of a value
  compare     Compare two texts and report their similarity
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  formatconv convert -s text -t base64 'Hello World'
  formatconv convert -s decimal -t binary 42
  formatconv convert -s png -t jpeg --quality 95 --file in.png -o out.jpg
  formatconv list --family number
  formatconv detect '{"name":"Widget"}'
  formatconv compare --diff --file-a v1.txt --file-b v2.txt

Run 'formatconv <command> --help' for more information on a command.`)
}
