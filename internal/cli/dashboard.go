package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cloudsteak/dora-mcp-server/pkg/dora"
)

// Dashboard metric indices, in display order.
const (
	metricFrequency = iota
	metricLeadTime
	metricFailureRate
	metricMTTR
	metricCount
)

type metricControl struct {
	name  string
	unit  string
	step  float64
	max   float64 // 0 means unbounded
	bands dora.BandSet
}

var metricControls = [metricCount]metricControl{
	metricFrequency:   {name: "Deployment frequency", unit: "deploys/day", step: 0.05, bands: dora.DeploymentFrequencyBands},
	metricLeadTime:    {name: "Lead time for changes", unit: "days", step: 0.5, bands: dora.LeadTimeBands},
	metricFailureRate: {name: "Change failure rate", unit: "%", step: 1, max: 100, bands: dora.ChangeFailureRateBands},
	metricMTTR:        {name: "Mean time to recovery", unit: "hours", step: 1, bands: dora.RecoveryTimeBands},
}

type dashboardModel struct {
	selected int
	width    int
	height   int

	rates   [metricCount]float64
	summary *dora.SummaryResult
	err     error
}

// Dashboard style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel(rates [metricCount]float64) dashboardModel {
	m := dashboardModel{rates: rates}
	m.recompute()
	return m
}

func (m *dashboardModel) recompute() {
	summary, err := dora.Summary(
		m.rates[metricFrequency],
		m.rates[metricLeadTime],
		m.rates[metricFailureRate],
		m.rates[metricMTTR],
	)
	m.summary = summary
	m.err = err
}

func (m *dashboardModel) adjust(delta float64) {
	ctl := metricControls[m.selected]
	v := m.rates[m.selected] + delta*ctl.step
	if v < 0 {
		v = 0
	}
	if ctl.max > 0 && v > ctl.max {
		v = ctl.max
	}
	m.rates[m.selected] = v
	m.recompute()
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "down", "j":
			m.selected = (m.selected + 1) % metricCount
			return m, nil
		case "shift+tab", "up", "k":
			m.selected = (m.selected - 1 + metricCount) % metricCount
			return m, nil
		case "right", "+", "l":
			m.adjust(1)
			return m, nil
		case "left", "-", "h":
			m.adjust(-1)
			return m, nil
		case "L":
			m.adjust(10)
			return m, nil
		case "H":
			m.adjust(-10)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	title := titleStyle.Render(" DORA What-If Dashboard ")
	help := helpStyle.Render("tab/up/down: select | left/right: adjust (shift: x10) | q: quit")

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	panels := make([]string, 0, metricCount+1)
	for i := 0; i < metricCount; i++ {
		panels = append(panels, m.renderMetricPanel(i))
	}
	panels = append(panels, m.renderOverallPanel())

	body := lipgloss.JoinVertical(lipgloss.Left, panels...)
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) renderMetricPanel(idx int) string {
	ctl := metricControls[idx]
	rate := m.rates[idx]
	band := ctl.bands.Classify(rate)

	var b strings.Builder
	b.WriteString(headerStyle.Render(ctl.name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-10s %.2f %s\n", "Rate:", rate, ctl.unit))
	b.WriteString(fmt.Sprintf("  %-10s %s (score %d)\n", "Tier:", renderLevel(band.Level), band.Level.Score()))
	b.WriteString(fmt.Sprintf("  %-10s %s", "Benchmark:", band.Description))

	style := panelStyle
	if m.selected == idx {
		style = activePanelStyle
	}
	return style.Width(m.panelWidth()).Render(b.String())
}

func (m dashboardModel) renderOverallPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Overall"))
	b.WriteString("\n")

	if m.summary == nil {
		b.WriteString("  No summary available.")
		return panelStyle.Width(m.panelWidth()).Render(b.String())
	}

	b.WriteString(fmt.Sprintf("  %-10s %d/16 (average %.2f)\n", "Score:", m.summary.TotalScore, m.summary.AverageScore))
	b.WriteString(fmt.Sprintf("  %-10s %s", "Tier:", renderLevel(m.summary.OverallPerformance)))

	return panelStyle.Width(m.panelWidth()).Render(b.String())
}

func (m dashboardModel) panelWidth() int {
	w := m.width - 6
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

var (
	dashFrequency float64
	dashLeadTime  float64
	dashCFR       float64
	dashMTTR      float64
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive what-if dashboard for DORA classifications",
	Long: `Launch an interactive terminal dashboard that classifies the four DORA
rates live as you adjust them, showing each metric's tier and the overall
performance assessment.

Select a metric with Tab or the arrow keys, adjust it with left/right,
quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rates := [metricCount]float64{
			metricFrequency:   dashFrequency,
			metricLeadTime:    dashLeadTime,
			metricFailureRate: dashCFR,
			metricMTTR:        dashMTTR,
		}
		p := tea.NewProgram(newDashboardModel(rates), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().Float64Var(&dashFrequency, "frequency", 0.5, "Starting deployments per day")
	dashboardCmd.Flags().Float64Var(&dashLeadTime, "lead-time", 2, "Starting lead time in days")
	dashboardCmd.Flags().Float64Var(&dashCFR, "failure-rate", 10, "Starting change failure rate percentage")
	dashboardCmd.Flags().Float64Var(&dashMTTR, "mttr", 4, "Starting mean time to recovery in hours")
	rootCmd.AddCommand(dashboardCmd)
}
