package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bacmon/bacmon/internal/alert"
	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/config"
	"github.com/bacmon/bacmon/internal/monitor"
	"github.com/bacmon/bacmon/internal/sensor"
)

// gaugeFullScale is the BAC at which the dashboard gauge pegs.
const gaugeFullScale = 0.20

var drinkKeys = map[string]string{
	"b": "beer",
	"w": "wine",
	"l": "liquor",
	"c": "cocktail",
}

func newWatchCmd(configPath *string) *cobra.Command {
	var (
		weightLbs float64
		sexName   string
		seed      uint64
	)

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Run a live BAC dashboard in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWatch(*configPath, weightLbs, sexName, seed)
		},
	}
	watch.Flags().Float64Var(&weightLbs, "weight", 180, "body weight in pounds")
	watch.Flags().StringVar(&sexName, "sex", "male", "biological sex: male|female")
	watch.Flags().Uint64Var(&seed, "seed", 0, "sensor simulator seed (0 for random)")
	return watch
}

func runWatch(configPath string, weightLbs float64, sexName string, seed uint64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sex, err := bac.ParseSex(sexName)
	if err != nil {
		return err
	}

	// The engine logs would tear the TUI, so the loop runs silent; everything
	// worth seeing is on the dashboard.
	registry := monitor.NewRegistry(monitor.RegistryConfig{
		Logger:        zerolog.New(io.Discard),
		TickInterval:  cfg.Monitor.TickInterval,
		HistoryLimit:  cfg.Monitor.HistoryLimit,
		AlertCooldown: cfg.Monitor.AlertCooldown,
		SourceFactory: func() sensor.Source {
			return sensor.NewSimulator(sensor.SimulatorConfig{Seed: seed})
		},
	})
	defer registry.StopAll()

	session, err := registry.Create(bac.Profile{WeightLbs: weightLbs, Sex: sex})
	if err != nil {
		return err
	}
	session.Start()

	program := tea.NewProgram(newWatchModel(session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("watch ui: %w", err)
	}
	return nil
}

type refreshMsg time.Time

func scheduleRefresh() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

type watchModel struct {
	session *monitor.Session

	status     monitor.Status
	alertLevel alert.Level
	alertText  string
	message    string

	width  int
	height int
}

func newWatchModel(session *monitor.Session) watchModel {
	m := watchModel{session: session}
	m.refresh()
	return m
}

func (m *watchModel) refresh() {
	m.status = m.session.Status()
	if event, active := m.session.CheckAlerts(); active {
		m.alertLevel = event.Level
		m.alertText = event.Message
	} else {
		m.alertLevel = alert.LevelNone
		m.alertText = ""
	}
}

func (m watchModel) Init() tea.Cmd {
	return scheduleRefresh()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case refreshMsg:
		m.refresh()
		return m, scheduleRefresh()

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "t":
			m.session.ShiftClock(30 * time.Minute)
			m.session.Tick(context.Background())
			m.message = "clock shifted 30 min"
			m.refresh()

		case "r":
			m.session.Reset()
			m.message = "session reset"
			m.refresh()

		default:
			if drinkType, ok := drinkKeys[key]; ok {
				drink, err := m.session.AddDrink(drinkType, bac.DrinkOverrides{})
				if err != nil {
					m.message = "drink rejected: " + err.Error()
				} else {
					m.message = fmt.Sprintf("logged %s (%.1f oz at %.1f%%)", drink.Type, drink.VolumeOz, drink.AlcoholPercent)
				}
				m.refresh()
			}
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	profile := m.session.Profile()
	baseline := m.session.Baseline()
	tierColor := tierColors[m.status.Color]

	header := demoTitle.Render("bacmon watch") + "  " +
		demoMuted.Render(fmt.Sprintf("%s  %.0f lb %s", m.status.SessionID, profile.WeightLbs, profile.Sex))

	bacValue := lipgloss.NewStyle().Bold(true).Foreground(tierColor).
		Render(fmt.Sprintf("BAC %.4f", m.status.Bac))
	gauge := renderGauge(m.status.Bac, tierColor)

	tierLine := lipgloss.NewStyle().Foreground(tierColor).Render(string(m.status.Tier)) +
		demoMuted.Render("  "+m.status.Recommendation)
	effectsLine := demoMuted.Render(m.status.Effects)

	sensors := fmt.Sprintf("heart %.0f bpm (base %.0f)   skin %.2f uS (base %.2f)   temp %.1f F (base %.1f)",
		m.status.Sensors.HeartRate, baseline.HeartRate,
		m.status.Sensors.SkinConductance, baseline.SkinConductance,
		m.status.Sensors.Temperature, baseline.Temperature)

	lastDrink := "no drinks yet"
	if m.status.DrinkCount > 0 {
		lastDrink = fmt.Sprintf("%d drinks, last %.0f min ago", m.status.DrinkCount, m.status.MinutesSinceLastDrink)
	}
	counters := fmt.Sprintf("%s   sober in %.1f h", lastDrink, m.status.SoberHours)

	alertLine := demoMuted.Render("no active alerts")
	if m.alertLevel != alert.LevelNone {
		alertLine = demoAlert.Render(fmt.Sprintf("! %s  %s", m.alertLevel, m.alertText))
	}

	feedback := ""
	if m.message != "" {
		feedback = demoClear.Render(m.message)
	}

	footer := demoMuted.Render("b:beer  w:wine  l:liquor  c:cocktail  t:+30min  r:reset  q:quit")

	body := strings.Join([]string{
		header,
		"",
		bacValue,
		gauge,
		"",
		tierLine,
		effectsLine,
		"",
		demoMuted.Render(sensors),
		demoMuted.Render(counters),
		"",
		alertLine,
		feedback,
		"",
		footer,
	}, "\n")

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

// renderGauge draws a fixed-width bar that pegs at gaugeFullScale.
func renderGauge(bacValue float64, color lipgloss.Color) string {
	const width = 32

	ratio := bacValue / gaugeFullScale
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar) +
		demoMuted.Render(fmt.Sprintf("  0 .. %.2f", gaugeFullScale))
}
