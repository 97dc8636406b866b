package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bacmon/bacmon/internal/alert"
	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/monitor"
	"github.com/bacmon/bacmon/internal/sensor"
)

var (
	demoTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#74c7ec"))
	demoMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	demoDrink  = lipgloss.NewStyle().Foreground(lipgloss.Color("#b4befe"))
	demoAlert  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8"))
	demoClear  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	tierColors = map[string]lipgloss.Color{
		"green":   lipgloss.Color("#a6e3a1"),
		"yellow":  lipgloss.Color("#f9e2af"),
		"orange":  lipgloss.Color("#fab387"),
		"red":     lipgloss.Color("#f38ba8"),
		"darkred": lipgloss.Color("#d20f39"),
	}
)

type demoStep struct {
	drink string
	shift time.Duration
}

// The demo timeline compresses an evening through the session clock shifter,
// so the whole BAC arc prints instantly: four drinks over two hours, then the
// slow climb back down to zero.
var demoSteps = []demoStep{
	{drink: "beer"},
	{shift: 30 * time.Minute},
	{drink: "wine"},
	{shift: 30 * time.Minute},
	{drink: "liquor"},
	{shift: 30 * time.Minute},
	{drink: "cocktail"},
	{shift: time.Hour},
	{shift: 2 * time.Hour},
	{shift: 2 * time.Hour},
	{shift: 3 * time.Hour},
}

func newDemoCmd() *cobra.Command {
	var (
		weightLbs float64
		sexName   string
		seed      uint64
	)

	demo := &cobra.Command{
		Use:   "demo",
		Short: "Print a scripted drinking timeline with live BAC classification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout(), weightLbs, sexName, seed)
		},
	}
	demo.Flags().Float64Var(&weightLbs, "weight", 180, "body weight in pounds")
	demo.Flags().StringVar(&sexName, "sex", "male", "biological sex: male|female")
	demo.Flags().Uint64Var(&seed, "seed", 42, "sensor simulator seed")
	return demo
}

func runDemo(out io.Writer, weightLbs float64, sexName string, seed uint64) error {
	sex, err := bac.ParseSex(sexName)
	if err != nil {
		return err
	}

	notifier := alert.NotifierFunc(func(_ context.Context, event alert.Event) {
		if event.Level == alert.LevelNone {
			_, _ = fmt.Fprintf(out, "        %s\n", demoClear.Render("* all clear  "+event.Message))
			return
		}
		_, _ = fmt.Fprintf(out, "        %s\n", demoAlert.Render(fmt.Sprintf("! %s  %s", event.Level, event.Message)))
	})

	registry := monitor.NewRegistry(monitor.RegistryConfig{
		Logger:   zerolog.New(io.Discard),
		Notifier: notifier,
		SourceFactory: func() sensor.Source {
			return sensor.NewSimulator(sensor.SimulatorConfig{Seed: seed})
		},
	})
	defer registry.StopAll()

	session, err := registry.Create(bac.Profile{WeightLbs: weightLbs, Sex: sex})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, demoTitle.Render("bacmon demo"))
	_, _ = fmt.Fprintf(out, "%s\n\n", demoMuted.Render(fmt.Sprintf("%.0f lb %s, seeded wearable simulator, clock-shifted timeline", weightLbs, sex)))
	_, _ = fmt.Fprintf(out, " %s\n", demoMuted.Render("time   BAC      status"))

	ctx := context.Background()
	var elapsed time.Duration

	for _, step := range demoSteps {
		if step.drink != "" {
			drink, addErr := session.AddDrink(step.drink, bac.DrinkOverrides{})
			if addErr != nil {
				return addErr
			}
			_, _ = fmt.Fprintf(out, " %s  %s\n",
				fmtElapsed(elapsed),
				demoDrink.Render(fmt.Sprintf("+ %s %.1f oz at %.1f%%", drink.Type, drink.VolumeOz, drink.AlcoholPercent)))
			continue
		}

		session.ShiftClock(step.shift)
		session.Tick(ctx)
		elapsed += step.shift

		status := session.Status()
		tier := lipgloss.NewStyle().Foreground(tierColors[status.Color]).Render(fmt.Sprintf("%-20s", status.Tier))
		line := fmt.Sprintf(" %s  %.4f   %s %s", fmtElapsed(elapsed), status.Bac, tier, demoMuted.Render(status.Recommendation))
		_, _ = fmt.Fprintln(out, line)
	}

	status := session.Status()
	_, _ = fmt.Fprintf(out, "\n%s\n", demoMuted.Render(fmt.Sprintf(
		"%d drinks logged, final BAC %.4f, sober in %.1f h", status.DrinkCount, status.Bac, status.SoberHours)))
	return nil
}

func fmtElapsed(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
