package main

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/flowml/flowpath/backend/cpu"
	"github.com/flowml/flowpath/flow"
	"github.com/flowml/flowpath/tensor"
)

func coeffsCmd() *cli.Command {
	var (
		configPath string
		steps      int
	)

	return &cli.Command{
		Name:  "coeffs",
		Usage: "Tabulate the path coefficients over the time interval",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to YAML config", Destination: &configPath},
			&cli.IntFlag{Name: "steps", Usage: "number of time points", Value: 10, Destination: &steps},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx

			if steps < 1 {
				return cli.Exit("error: --steps must be at least 1", 1)
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			backend := cpu.New()
			plan := flow.NewPlan[float64](cfg, backend)

			// Interior time points; the coefficients degenerate at the
			// endpoints.
			ts := interiorTimes(steps, backend)
			x := tensor.Zeros[float64](tensor.Shape{steps, 1}, backend)

			alphaT, alphaDot := plan.Alpha(ts)
			betaT, betaDot := plan.Beta(ts)
			ratio := plan.AlphaRatio(ts)
			_, scoreCoef, err := plan.Drift(x, ts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"T", "ALPHA", "ALPHA'", "BETA", "BETA'", "ALPHA'/ALPHA", "SCORE COEF"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			for i := 0; i < steps; i++ {
				table.Append([]string{
					fmt.Sprintf("%.4f", ts.Data()[i]),
					fmt.Sprintf("%.6g", alphaT.Data()[i]),
					fmt.Sprintf("%.6g", alphaDot.Data()[i]),
					fmt.Sprintf("%.6g", betaT.Data()[i]),
					fmt.Sprintf("%.6g", betaDot.Data()[i]),
					fmt.Sprintf("%.6g", ratio.Data()[i]),
					fmt.Sprintf("%.6g", scoreCoef.Data()[i]),
				})
			}
			table.Render()
			return nil
		},
	}
}

// interiorTimes returns n evenly spaced time points strictly inside (0, 1).
func interiorTimes(n int, backend *cpu.Backend) *tensor.Tensor[float64, *cpu.Backend] {
	step := 1.0 / float64(n+1)
	if n == 1 {
		return tensor.Full[float64](tensor.Shape{1}, 0.5, backend)
	}
	return tensor.Linspace[float64](step, 1-step, n, backend)
}
