// Command iclp is the interval constraint engine's CLI: it exercises the
// search operators against a handful of built-in demo scenarios.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gitrdm/iclp/internal/telemetry"
	"github.com/gitrdm/iclp/pkg/iclp"
)

var (
	verbose bool
	logger  = logrus.New()
)

func main() {
	root := &cobra.Command{
		Use:   "iclp",
		Short: "Interval constraint logic programming engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			if term.IsTerminal(int(os.Stdout.Fd())) {
				logger.SetFormatter(&logrus.TextFormatter{ForceColors: true})
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable propagation tracing")

	root.AddCommand(sendMoreMoneyCmd())
	root.AddCommand(linearSystemCmd())
	root.AddCommand(statsServeCmd())

	if err := root.Execute(); err != nil {
		logger.Fatal(err)
	}
}

// sendMoreMoneyCmd solves the SEND+MORE=MONEY cryptarithmetic puzzle,
// posted as pairwise disequalities plus the weighted digit-sum equation
// and resolved with Solve.
func sendMoreMoneyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-more-money",
		Short: "Solve SEND + MORE = MONEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := iclp.NewEngine(iclp.WithVerbose(verbose))
			letters := []string{"S", "E", "N", "D", "M", "O", "R", "Y"}
			v := make(map[string]iclp.Var, len(letters))
			for _, name := range letters {
				lo := 0.0
				if name == "S" || name == "M" {
					lo = 1
				}
				v[name] = e.Declare(name, iclp.KindInteger, lo, 9)
			}

			for i, a := range letters {
				for _, b := range letters[i+1:] {
					if err := iclp.Post(e, iclp.Bin{Op: iclp.OpNe, X: iclp.VarRef{V: v[a]}, Y: iclp.VarRef{V: v[b]}}); err != nil {
						return err
					}
				}
			}

			digits := func(weights map[string]float64) iclp.Expr {
				var terms []iclp.Expr
				for name, w := range weights {
					terms = append(terms, iclp.Bin{Op: iclp.OpMul, X: iclp.Num{Value: w}, Y: iclp.VarRef{V: v[name]}})
				}
				return iclp.Nary{Op: iclp.OpAdd, Args: terms}
			}
			send := digits(map[string]float64{"S": 1000, "E": 100, "N": 10, "D": 1})
			more := digits(map[string]float64{"M": 1000, "O": 100, "R": 10, "E": 1})
			money := digits(map[string]float64{"M": 10000, "O": 1000, "N": 100, "E": 10, "Y": 1})
			if err := iclp.Post(e, iclp.Bin{
				Op: iclp.OpEq,
				X:  iclp.Bin{Op: iclp.OpAdd, X: send, Y: more},
				Y:  money,
			}); err != nil {
				return err
			}

			vars := make([]iclp.Var, len(letters))
			for i, name := range letters {
				vars[i] = v[name]
			}
			ctx := context.Background()
			boxes, err := iclp.Solve(ctx, e, vars, iclp.WithPrecision(0.5), iclp.WithMaxSolutions(1))
			if err != nil {
				return err
			}
			if len(boxes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no solution found")
				return nil
			}
			for i, name := range letters {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%g ", name, boxes[0][i].Lo)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

// linearSystemCmd narrows a small linear system to its unique solution.
func linearSystemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "linear-system",
		Short: "Narrow a small linear system of equations",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := iclp.NewEngine(iclp.WithVerbose(verbose))
			x := e.Declare("x", iclp.KindReal, -1e6, 1e6)
			y := e.Declare("y", iclp.KindReal, -1e6, 1e6)

			// x + y = 10 ; x - y = 2  =>  x=6, y=4
			if err := iclp.Post(e, iclp.Bin{
				Op: iclp.OpEq,
				X:  iclp.Bin{Op: iclp.OpAdd, X: iclp.VarRef{V: x}, Y: iclp.VarRef{V: y}},
				Y:  iclp.Num{Value: 10},
			}); err != nil {
				return err
			}
			if err := iclp.Post(e, iclp.Bin{
				Op: iclp.OpEq,
				X:  iclp.Bin{Op: iclp.OpSub, X: iclp.VarRef{V: x}, Y: iclp.VarRef{V: y}},
				Y:  iclp.Num{Value: 2},
			}); err != nil {
				return err
			}

			ctx := context.Background()
			boxes, err := iclp.Solve(ctx, e, []iclp.Var{x, y}, iclp.WithPrecision(1e-6))
			if err != nil {
				return err
			}
			for _, box := range boxes {
				fmt.Fprintf(cmd.OutOrStdout(), "x=%g y=%g\n", box[0].Midpoint(), box[1].Midpoint())
			}
			return nil
		},
	}
}

// statsServeCmd runs the linear-system demo against an engine wired to a
// Prometheus Recorder and serves the resulting metrics over HTTP.
func statsServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "stats serve",
		Short: "Run a demo engine and serve its Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			metrics := telemetry.NewMetrics(reg)

			e := iclp.NewEngine(iclp.WithVerbose(verbose))
			e.UseMetrics(metrics)
			x := e.Declare("x", iclp.KindReal, -1e6, 1e6)
			y := e.Declare("y", iclp.KindReal, -1e6, 1e6)
			if err := iclp.Post(e,
				iclp.Bin{Op: iclp.OpEq, X: iclp.Bin{Op: iclp.OpAdd, X: iclp.VarRef{V: x}, Y: iclp.VarRef{V: y}}, Y: iclp.Num{Value: 10}},
				iclp.Bin{Op: iclp.OpEq, X: iclp.Bin{Op: iclp.OpSub, X: iclp.VarRef{V: x}, Y: iclp.VarRef{V: y}}, Y: iclp.Num{Value: 2}},
			); err != nil {
				return err
			}
			if _, err := iclp.Solve(context.Background(), e, []iclp.Var{x, y}, iclp.WithPrecision(1e-6)); err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on %s/metrics\n", addr)
			return http.ListenAndServe(addr, mux)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address")
	return cmd
}
