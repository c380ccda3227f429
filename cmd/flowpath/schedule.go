package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/flowml/flowpath/backend/cpu"
	"github.com/flowml/flowpath/flow"
	"github.com/flowml/flowpath/tensor"
)

func scheduleCmd() *cli.Command {
	var (
		configPath string
		formName   string
		norm       float64
		steps      int
	)

	return &cli.Command{
		Name:  "schedule",
		Usage: "Tabulate a diffusion-coefficient schedule and its derivative",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to YAML config", Destination: &configPath},
			&cli.StringFlag{Name: "form", Usage: "schedule name (" + formNameList() + ")", Destination: &formName},
			&cli.Float64Flag{Name: "norm", Usage: "schedule normalization", Value: 1, Destination: &norm},
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

			form := cfg.DiffusionForm
			if formName != "" {
				form, err = flow.ParseDiffusionForm(formName)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
			}

			backend := cpu.New()
			plan := flow.NewPlan[float64](cfg, backend)

			ts := interiorTimes(steps, backend)
			x := tensor.Zeros[float64](tensor.Shape{steps, 1}, backend)

			diffusion, err := plan.Diffusion(x, ts, form, norm)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			derivative, derr := plan.DDiffusion(x, ts, form, norm)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"T", "G(T)", "G'(T)"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			for i := 0; i < steps; i++ {
				dcol := "-"
				if derr == nil {
					dcol = fmt.Sprintf("%.6g", rowValue(derivative, i))
				}
				table.Append([]string{
					fmt.Sprintf("%.4f", ts.Data()[i]),
					fmt.Sprintf("%.6g", rowValue(diffusion, i)),
					dcol,
				})
			}
			table.Render()

			if derr != nil {
				fmt.Printf("note: %v\n", derr)
			}
			return nil
		},
	}
}

// rowValue reads the schedule value for time point i. Time-independent
// schedules return a single-element tensor that applies to every row.
func rowValue(t *tensor.Tensor[float64, *cpu.Backend], i int) float64 {
	data := t.Data()
	if len(data) == 1 {
		return data[0]
	}
	return data[i]
}

func formNameList() string {
	forms := flow.Forms()
	names := make([]string, len(forms))
	for i, f := range forms {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
