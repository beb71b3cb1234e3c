package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/bitvec/starbin"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Format string
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate Starlark expressions over binary numbers",
		Long: `Evaluate each argument as a Starlark expression, with Binary, u8..u64,
i8..i64, concat, fp_encode and fp_decode predeclared. With no arguments,
each non-blank line of standard input is an expression.

Expressions are independent and run concurrently; results print in order.

Example:
  bitvec eval 'u8(250) + 10' 'Binary("1111", sign_behavior="signed").value()'
  bitvec eval --format %x 'u16(0xbeef) ^ 0xffff'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "format spec for binary results (default from configuration)")

	return cmd
}

func runEval(opts *EvalOptions, args []string, cmd *cobra.Command) (err error) {
	exprs := args
	if len(exprs) == 0 {
		exprs, err = readLines(cmd.InOrStdin())
		if err != nil {
			return
		}
	}
	if len(exprs) == 0 {
		return ErrNoInput
	}

	spec := opts.Format
	if spec == "" {
		spec = opts.Config.Format.Default
	}

	if opts.Config.Verbose {
		log.Printf("eval: %d expressions, %d workers", len(exprs), opts.Config.Eval.Workers)
	}

	results, err := evalBatch(cmd.Context(), exprs, opts.Config.Eval.Workers, spec)
	out := cmd.OutOrStdout()
	for _, result := range results {
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}

	return
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) (lines []string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	err = scanner.Err()
	return
}

// evalBatch evaluates each expression in its own session. Results are
// returned in input order; the results of expressions that did not run
// are empty.
func evalBatch(ctx context.Context, exprs []string, workers int, spec string) (results []string, err error) {
	results = make([]string, len(exprs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for n, expr := range exprs {
		g.Go(func() (err error) {
			if err = ctx.Err(); err != nil {
				return
			}

			session := starbin.NewSession(fmt.Sprintf("eval:%d", n+1), nil)
			value, err := session.Eval(expr)
			if err == nil {
				results[n], err = render(value, spec)
			}
			if err != nil {
				err = &ErrEval{Index: n + 1, Expr: expr, Err: err}
			}
			return
		})
	}

	err = g.Wait()

	return
}

// render prints a result. Binary values use spec when it is set.
func render(value starlark.Value, spec string) (string, error) {
	switch v := value.(type) {
	case *starbin.Value:
		if spec == "" {
			return v.Number().String(), nil
		}
		return v.Number().FormatWith(spec)
	case starlark.String:
		return string(v), nil
	case starlark.NoneType:
		return "", nil
	}

	return value.String(), nil
}
