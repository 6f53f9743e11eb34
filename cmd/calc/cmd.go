package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/tool"
	"github.com/zephyrtronium/calc/units"
)

// errFailed reports that some expressions failed after their errors were
// already printed.
var errFailed = errors.New("some expressions failed")

type flags struct {
	config     string
	in         string
	echo       bool
	noColor    bool
	maxDepth   int
	maxIntBits int
}

// load reads the configuration file and applies flags set on the command
// line over it.
func (f *flags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if cmd.Flags().Changed("max-int-bits") {
		cfg.MaxIntBits = f.maxIntBits
	}
	return cfg, nil
}

func rootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:   "calc [expression ...]",
		Short: "Evaluate arithmetic expressions",
		Long: `Evaluate arithmetic expressions given as arguments, or one per line from
the input file or stdin if no arguments are given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if f.noColor {
				color.NoColor = true
			}
			srcs := args
			if len(args) == 0 || f.in != "" {
				lines, err := readLines(f.in, stdin)
				if err != nil {
					return err
				}
				srcs = append(lines, args...)
			}
			return evalAll(srcs, cfg.Options(), f.echo, stdout, stderr)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "configuration file (YAML)")
	pf.IntVar(&f.maxDepth, "max-depth", calc.DefaultMaxDepth, "maximum nesting depth of expressions")
	pf.IntVar(&f.maxIntBits, "max-int-bits", calc.DefaultMaxIntBits, "maximum size of integer results in bits")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored errors")
	root.Flags().StringVar(&f.in, "in", "", `input file, one expression per line ("-" for stdin)`)
	root.Flags().BoolVar(&f.echo, "echo", false, "print parse trees")
	root.AddCommand(convertCmd(), toolsCmd(), callCmd(&f))
	return root
}

// readLines reads the non-blank lines of the named file, or of stdin if the
// name is empty or "-".
func readLines(name string, stdin io.Reader) ([]string, error) {
	r := stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, sc.Err()
}

func evalAll(srcs []string, opts []calc.Option, echo bool, stdout, stderr io.Writer) error {
	red := color.New(color.FgRed)
	var failed bool
	for _, src := range srcs {
		if echo {
			if ex, err := calc.Compile(src, opts...); err == nil {
				fmt.Fprintf(stdout, "%v : ", ex)
			}
		}
		r, err := calc.Evaluate(src, opts...)
		if err != nil {
			failed = true
			red.Fprintln(stderr, err)
			continue
		}
		fmt.Fprintln(stdout, r)
	}
	if failed {
		return errFailed
	}
	return nil
}

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a measurement between units",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q", args[0])
			}
			r, err := units.Convert(v, args[1], args[2])
			if err != nil {
				color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), err)
				return errFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool declarations as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := json.NewEncoder(cmd.OutOrStdout())
			e.SetIndent("", "  ")
			return e.Encode(tool.Default().List())
		},
	}
}

func callCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "call TOOL ARGUMENTS",
		Short: "Call a tool with JSON arguments and print the result as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			calculator := tool.Calculator(tool.CacheSize(cfg.CacheSize), tool.Limits(cfg.Options()...))
			reg, err := tool.NewRegistry(
				[]tool.Tool{calculator, tool.UnitConverter()},
				tool.WithLogger(cfg.Logger(cmd.ErrOrStderr())),
			)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res, _ := reg.Call(ctx, tool.Call{Name: args[0], Arguments: json.RawMessage(args[1])})
			if err := json.NewEncoder(cmd.OutOrStdout()).Encode(res); err != nil {
				return err
			}
			if res.Error != "" {
				return errFailed
			}
			return nil
		},
	}
}
