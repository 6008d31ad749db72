package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render"
)

var (
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the interactive seed explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:       "explore [grid|lattice|stack]",
		Short:     "Browse seeds of a layout interactively",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: pipeline.Variants,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Variant = args[0]
			m, err := NewExploreModel(opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "first seed")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "face width (stack: footprint width)")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "face height (stack: footprint depth)")
	cmd.Flags().Float64Var(&opts.Length, "length", pipeline.DefaultLength, "parent length for stacks")

	return cmd
}

// =============================================================================
// ExploreModel - Interactive seed browsing
// =============================================================================

// ExploreModel is the bubbletea model re-running a layout as the seed changes.
type ExploreModel struct {
	Opts   pipeline.Options
	Result layout.Result
	Err    error
	Cols   int
	Rows   int
}

// NewExploreModel validates opts and computes the first layout.
func NewExploreModel(opts pipeline.Options) (ExploreModel, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return ExploreModel{}, err
	}
	m := ExploreModel{Opts: opts, Cols: pipeline.PreviewCols, Rows: pipeline.PreviewRows}
	m.relayout()
	return m, nil
}

func (m *ExploreModel) relayout() {
	m.Result, m.Err = pipeline.GenerateLayout(m.Opts)
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.Opts.Seed++
			m.relayout()
		case "left", "h":
			if m.Opts.Seed > 0 {
				m.Opts.Seed--
				m.relayout()
			}
		}
	case tea.WindowSizeMsg:
		m.Cols = max(msg.Width-6, 10)
		m.Rows = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s layout", m.Opts.Variant)))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("seed "))
	b.WriteString(StyleNumber.Render(fmt.Sprint(m.Opts.Seed)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ change seed  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(StyleWarning.Render(m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(previewStyle.Render(render.Preview(m.Result, m.Opts.Viewport(), m.Cols, m.Rows)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d elements", len(m.Result.Elements))))
	return b.String()
}
