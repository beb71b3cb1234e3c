package cli

import (
	"context"
	"errors"
	"fmt"
	goio "io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ezrec/bitvec/cpu"
	"github.com/ezrec/bitvec/emulator"
	"github.com/ezrec/bitvec/io"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Input     string
	Output    string
	Format    string
	Listing   bool
	TickLimit int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <program.asm>",
		Short: "Assemble and run a program on the 16 bit toy CPU",
		Long: `Assemble a toy CPU program and run it until it stops.

The 'in' instruction reads whitespace separated integers from the input
tape, and 'print' writes each word to the output tape.

Example:
  bitvec run fib.asm
  bitvec run --listing fib.asm
  bitvec run -i numbers.txt --tape-format '%x\n' sum.asm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("tick-limit") {
				opts.TickLimit = opts.Config.Cpu.TickLimit
			}
			return runProgram(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "-", "input tape file, - for standard input")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output tape file, - for standard output")
	cmd.Flags().StringVar(&opts.Format, "tape-format", io.TAPE_DEFAULT_FORMAT, "format of each printed word")
	cmd.Flags().BoolVar(&opts.Listing, "listing", false, "print the assembled listing and do not run")
	cmd.Flags().IntVar(&opts.TickLimit, "tick-limit", 0, "stop after this many instructions, 0 for no limit (default from configuration)")

	return cmd
}

// assemble reads and assembles a program, with the emulator's defines
// available as equates.
func assemble(emu *emulator.Emulator, path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

func runProgram(opts *RunOptions, path string, cmd *cobra.Command) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opts.Config.Verbose || opts.Config.Cpu.Trace

	prog, err := assemble(emu, path)
	if err != nil {
		return
	}

	if opts.Listing {
		var text string
		text, err = prog.Listing()
		if err != nil {
			return
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return
	}

	emu.Program = prog
	emu.Tape.Format = opts.Format

	if opts.Input == "-" {
		emu.Tape.Input = cmd.InOrStdin()
	} else {
		var inf *os.File
		inf, err = os.Open(opts.Input)
		if err != nil {
			return
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	var output goio.Writer = cmd.OutOrStdout()
	if opts.Output != "-" {
		var ouf *os.File
		ouf, err = os.Create(opts.Output)
		if err != nil {
			return
		}
		defer func() {
			if cerr := ouf.Close(); err == nil {
				err = cerr
			}
		}()
		output = ouf
	}
	emu.Tape.Output = output

	err = emu.Reset()
	if err != nil {
		return
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx, opts.TickLimit)
	if errors.Is(err, context.Canceled) {
		log.Printf("run: interrupted at line %d", emu.LineNo())
	}

	if opts.Config.Verbose {
		log.Printf("run: %d ticks, %d words printed", emu.Ticks(), len(emu.Printed()))
	}

	return
}
