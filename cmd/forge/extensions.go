package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"codeforge/internal/extension"
	"codeforge/internal/settings"
	"codeforge/pkg/extsdk"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "Inspect and validate installed extensions",
}

var extensionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Load all global extensions and list them",
	RunE:  runExtensionsList,
}

var extensionsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Load a single extension file and report what it provides",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtensionsValidate,
}

func init() {
	extensionsCmd.AddCommand(extensionsListCmd)
	extensionsCmd.AddCommand(extensionsValidateCmd)
}

func newManager() (*extension.Manager, error) {
	store, err := settings.NewStore(cfg.SettingsPath(), logger)
	if err != nil {
		return nil, err
	}
	debounce, err := cfg.Debounce()
	if err != nil {
		return nil, err
	}
	return extension.NewManager(extension.Options{
		GlobalDir:      cfg.GlobalExtensionsDir(),
		ProjectDirName: cfg.Extensions.ProjectDirName,
		Debounce:       debounce,
		Hosts:          extension.Hosts{Settings: store},
		Logger:         logger,
	}), nil
}

func runExtensionsList(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	if err := m.Init(cmd.Context()); err != nil {
		return err
	}
	defer m.Dispose()

	exts := m.Registry().GetExtensions("")
	if len(exts) == 0 {
		fmt.Println("No extensions installed in", cfg.GlobalExtensionsDir())
		return nil
	}

	headers := []string{"NAME", "VERSION", "STATUS", "TOOLS", "FILE"}
	rows := make([][]string, 0, len(exts))
	for _, ext := range exts {
		status := okStyle.Render("ready")
		if !ext.Initialized {
			status = badStyle.Render("failed")
		}
		tools := m.Registry().GetToolsByExtension(ext.Metadata.Name)
		rows = append(rows, []string{
			ext.Metadata.Name,
			ext.Metadata.Version,
			status,
			fmt.Sprintf("%d", len(tools)),
			ext.FilePath,
		})
	}

	fmt.Println(titleStyle.Render("Extensions"))
	fmt.Print(renderTable(headers, rows))

	stats := m.Stats()
	fmt.Printf("\n%d loaded, %d failed\n", stats.Loaded, stats.LoadFailures)
	return nil
}

func runExtensionsValidate(cmd *cobra.Command, args []string) error {
	loader := extension.NewLoader(logger)
	result := loader.Load(args[0])
	if result == nil {
		return fmt.Errorf("extension failed to load: %s (run with -v for details)", args[0])
	}

	fmt.Println(okStyle.Render("✓ loads"), result.Metadata.Name, result.Metadata.Version)

	for _, capability := range describeCapabilities(result.Instance) {
		fmt.Println("  provides:", capability)
	}
	return nil
}

// describeCapabilities names the optional surfaces an instance implements.
// Loaded extensions report their own declared surface; type assertions
// would claim every capability for them since the loader's adapter
// implements the full set.
func describeCapabilities(instance any) []string {
	if lister, ok := instance.(interface{ Capabilities() []string }); ok {
		return lister.Capabilities()
	}
	var caps []string
	if _, ok := instance.(extsdk.Initializer); ok {
		caps = append(caps, "OnLoad")
	}
	if _, ok := instance.(extsdk.Disposer); ok {
		caps = append(caps, "OnUnload")
	}
	if _, ok := instance.(extsdk.ToolProvider); ok {
		caps = append(caps, "GetTools")
	}
	if _, ok := instance.(extsdk.CommandProvider); ok {
		caps = append(caps, "GetCommands")
	}
	if _, ok := instance.(extsdk.AgentProvider); ok {
		caps = append(caps, "GetAgents")
	}
	if _, ok := instance.(extsdk.ModeProvider); ok {
		caps = append(caps, "GetModes")
	}
	if _, ok := instance.(extsdk.ProfileObserver); ok {
		caps = append(caps, "OnAgentProfileUpdated")
	}
	return caps
}

// renderTable renders a padded column table like the chat UI tables do.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the event names extensions can handle",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range extsdk.EventNames() {
			fmt.Println(name)
		}
	},
}
