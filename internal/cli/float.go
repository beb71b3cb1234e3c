package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ezrec/bitvec/binary"
	"github.com/ezrec/bitvec/floats"
)

// FloatOptions holds flags for the float command.
type FloatOptions struct {
	*RootOptions
	Decode bool
	List   bool
	Fixed  int
}

// NewFloatCommand creates the float command.
func NewFloatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FloatOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "float <format> <value>...",
		Short: "Encode values in a small float format",
		Long: `Encode decimal values in a float format, printing the bits, the sign,
exponent and mantissa fields, and the value the bits hold after rounding.

A format is a preset name (see --list) or eXmY for X exponent and Y
mantissa bits.

Example:
  bitvec float fp16 1.0 0.1 65504
  bitvec float --decode bf16 0x3f80
  bitvec float --fixed 8 fp8 0.3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.List {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFloat(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Decode, "decode", false, "values are bit patterns to decode")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list the preset formats")
	cmd.Flags().IntVar(&opts.Fixed, "fixed", 0, "also print the binary fixed point expansion, to this many fraction bits")

	return cmd
}

// floatFormat looks up a preset, or builds an eXmY format.
func floatFormat(name string) (ft floats.Format, err error) {
	var exponent, mantissa int
	if n, _ := fmt.Sscanf(name, "e%dm%d", &exponent, &mantissa); n == 2 {
		ft = floats.New("", exponent, mantissa)
		err = ft.Validate()
		return
	}

	return floats.Lookup(name)
}

func runFloat(opts *FloatOptions, args []string, cmd *cobra.Command) (err error) {
	out := cmd.OutOrStdout()

	if opts.List {
		for _, name := range floats.Names() {
			ft, _ := floats.Lookup(name)
			fmt.Fprintf(out, "%v\t%d bits\texponent %d\tmantissa %d\tmax %g\n",
				name, ft.Bits(), ft.Exponent, ft.Mantissa, ft.Max())
		}
		return
	}

	ft, err := floatFormat(args[0])
	if err != nil {
		return
	}

	for _, arg := range args[1:] {
		var bits *binary.Binary
		if opts.Decode {
			bits, err = binary.Parse(arg, binary.WithLength(ft.Bits()))
		} else {
			var v float64
			v, err = strconv.ParseFloat(arg, 64)
			if err != nil {
				return
			}
			bits, err = ft.Encode(v)
		}
		if err != nil {
			return
		}

		var parts floats.Parts
		parts, err = ft.Split(bits)
		if err != nil {
			return
		}

		var value float64
		value, err = ft.Decode(bits)
		if err != nil {
			return
		}

		fmt.Fprintf(out, "%v\t%v\t%v\t%g\n", arg, bits.Hex(true), parts, value)

		if opts.Fixed > 0 {
			var fx floats.Fixed
			fx, err = floats.SplitFixed(value, opts.Fixed)
			if err != nil {
				return
			}
			fmt.Fprintf(out, "\tfixed %v\n", fx)
		}
	}

	return
}
