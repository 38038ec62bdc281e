// ABOUTME: Occupancy pricing setup wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/icons"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/styles"
)

// Wizard collects occupancy pricing inputs as a bubbletea model. It quits the
// program when the last step completes or the user cancels.
type Wizard struct {
	input     models.OccupancyInput
	form      *huh.Form
	step      int
	width     int
	done      bool
	cancelled bool

	// Form field values (strings for huh)
	inventory string
	usual     string
	peak      string
	baseRate  string
	maxRate   string
}

// Step names for progress indicator
var stepNames = []string{"Property", "Occupancy", "Rates"}

var cancelKey = key.NewBinding(
	key.WithKeys("esc", "ctrl+c"),
	key.WithHelp("esc", "cancel"),
)

// createTheme returns a custom huh theme matching the web UI colors
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	cyan := lipgloss.Color("#06B6D4")      // Cyan-500 - primary
	cyanLight := lipgloss.Color("#22D3EE") // Cyan-400 - accents
	blue := lipgloss.Color("#3B82F6")      // Blue-500 - info
	gray := lipgloss.Color("#9CA3AF")      // Gray-400 - muted
	grayLight := lipgloss.Color("#E5E7EB") // Gray-200 - text
	red := lipgloss.Color("#F87171")       // Red-400 - errors
	slate := lipgloss.Color("#334155")     // Slate-700 - borders

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(cyan).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(cyan)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(cyanLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	// Blurred field styles (inherit from focused with muted colors)
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates a wizard. Non-zero fields of defaults pre-fill the inputs.
func New(defaults models.OccupancyInput) *Wizard {
	w := &Wizard{
		input:     defaults,
		step:      1,
		inventory: formatDefault(float64(defaults.Inventory)),
		usual:     formatDefault(defaults.UsualOccupancy),
		peak:      formatDefault(defaults.PeakOccupancy),
		baseRate:  formatDefault(defaults.BaseRate),
		maxRate:   formatDefault(defaults.MaxRate),
	}
	w.form = w.createStep1Form()
	return w
}

func formatDefault(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your total room inventory?").
				Description("Up to 35 rooms uses 4 pricing slabs, larger properties get 5").
				Placeholder("e.g., 30").
				CharLimit(3).
				Value(&w.inventory).
				Validate(validateInventory),
		).Title("Step 1: Property").
			Description("Size the property so slabs can be laid out across its rooms"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your usual/average occupancy percentage?").
				DescriptionFunc(func() string { return w.roomsHint(w.usual, "on a typical day") }, &w.usual).
				Placeholder("e.g., 65").
				CharLimit(5).
				Value(&w.usual).
				Validate(validateUsual),
			huh.NewInput().
				Title("What is your occupancy during peak days?").
				DescriptionFunc(func() string { return w.roomsHint(w.peak, "during peak periods") }, &w.peak).
				Placeholder("e.g., 90").
				CharLimit(5).
				Value(&w.peak).
				Validate(func(s string) error { return validatePeak(w.usual, s) }),
		).Title("Step 2: Occupancy").
			Description(fmt.Sprintf("%s With %s rooms we'll create %d pricing slabs",
				icons.Info, w.inventory, services.SlabCount(w.input.Inventory))),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your base room rate (starting price)?").
				Placeholder("e.g., 2000").
				CharLimit(10).
				Value(&w.baseRate).
				Validate(validateBaseRate),
			huh.NewInput().
				Title("What is the maximum rate you are willing to charge?").
				Description("Rates climb from the base rate toward this ceiling as rooms sell").
				Placeholder("e.g., 5000").
				CharLimit(10).
				Value(&w.maxRate).
				Validate(func(s string) error { return validateMaxRate(w.baseRate, s) }),
		).Title("Step 3: Rates").
			Description("Set the price range the slabs will spread across"),
	).WithTheme(createTheme())
}

// roomsHint converts an occupancy percentage into an approximate room count.
func (w *Wizard) roomsHint(percent, when string) string {
	p, err := parseNumber(percent)
	if err != nil || p <= 0 || w.input.Inventory <= 0 {
		return "Enter a percentage, e.g. 65 for 65%"
	}
	rooms := math.Floor(p/100*float64(w.input.Inventory) + 0.5)
	return fmt.Sprintf("That's approximately %.0f rooms %s", rooms, when)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if key.Matches(msg, cancelKey) {
			w.cancelled = true
			return w, tea.Quit
		}
	}

	// Update the current form
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	switch w.form.State {
	case huh.StateCompleted:
		return w.advanceStep()
	case huh.StateAborted:
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		inventory, _ := parseNumber(w.inventory)
		w.input.Inventory = int(inventory)
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.input.UsualOccupancy, _ = parseNumber(w.usual)
		w.input.PeakOccupancy, _ = parseNumber(w.peak)
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.input.BaseRate, _ = parseNumber(w.baseRate)
		w.input.MaxRate, _ = parseNumber(w.maxRate)
		w.done = true
		return w, tea.Quit
	}

	return w, nil
}

// View implements tea.Model
func (w *Wizard) View() string {
	if w.done || w.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	title := icons.Wizard.String() + " Occupancy Pricing Setup"
	topFillWidth := max(0, width-5-lipgloss.Width(title))
	topBorder := "┌─ " + titleStyle.Render(title) + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + filledBar + emptyBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// Input returns the collected input and whether the wizard ran to completion.
func (w *Wizard) Input() (models.OccupancyInput, bool) {
	return w.input, w.done && !w.cancelled
}

// Cancelled reports whether the user left the wizard early.
func (w *Wizard) Cancelled() bool {
	return w.cancelled
}

var (
	errInventory = errors.New("Please enter a whole number of rooms between 1 and " + strconv.Itoa(services.MaxInventory))
	errUsual     = errors.New("Please enter a percentage above 0 and at most 100")
	errBaseRate  = errors.New("Please enter a valid rate greater than 0")
	errNumber    = errors.New("must be a number")
)

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNumber
	}
	return v, nil
}

func validateInventory(s string) error {
	v, err := parseNumber(s)
	if err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 || services.CheckInventory(int(v)) != nil {
		return errInventory
	}
	return nil
}

func validateUsual(s string) error {
	v, err := parseNumber(s)
	if err != nil || services.CheckUsualOccupancy(v) != nil {
		return errUsual
	}
	return nil
}

func validatePeak(usual, s string) error {
	u, _ := parseNumber(usual)
	v, err := parseNumber(s)
	if err != nil || services.CheckPeakOccupancy(u, v) != nil {
		return fmt.Errorf("Please enter a percentage between %s%% and 100%%", strings.TrimSpace(usual))
	}
	return nil
}

func validateBaseRate(s string) error {
	v, err := parseNumber(s)
	if err != nil || services.CheckBaseRate(v) != nil {
		return errBaseRate
	}
	return nil
}

func validateMaxRate(baseRate, s string) error {
	base, _ := parseNumber(baseRate)
	v, err := parseNumber(s)
	if err != nil || services.CheckMaxRate(base, v) != nil {
		return fmt.Errorf("Please enter a rate of at least %s", strings.TrimSpace(baseRate))
	}
	return nil
}
