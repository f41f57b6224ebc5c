package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdpreview/internal/configloader"
	"github.com/yaklabco/mdpreview/internal/ui/pretty"
)

// helpStyles colours the parts of command help.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help and usage for Cobra commands.
type HelpFormatter struct {
	styles helpStyles
	usage  *template.Template
	help   *template.Template
}

// NewHelpFormatter creates a help formatter for the given color mode and writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}

	funcs := template.FuncMap{
		"heading":   h.styles.heading.Render,
		"command":   h.styles.command.Render,
		"dim":       h.styles.dim.Render,
		"flags":     h.flagUsages,
		"env":       h.envUsages,
		"rpad":      rpad,
		"join":      strings.Join,
		"trimLines": trimTrailingWhitespaces,
	}

	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpHeaderTemplate + usageTemplate))
	return h
}

const helpHeaderTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trimLines . }}

{{end}}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ env }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// ApplyToCommand installs the styled help and usage output on cmd and its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := h.usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagLine is one rendered flag before column alignment.
type flagLine struct {
	names string
	usage string
}

// flagUsages lists the visible flags of set as aligned, styled lines.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	var lines []flagLine
	width := 0

	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		varName, usage := pflag.UnquoteUsage(flag)

		names := "    --" + flag.Name
		if flag.Shorthand != "" && flag.ShorthandDeprecated == "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		if varName != "" {
			names += " " + varName
		}

		if def := defaultValue(flag); def != "" {
			usage += " " + h.styles.dim.Render("(default "+def+")")
		}

		width = max(width, len(names))
		lines = append(lines, flagLine{names: names, usage: usage})
	})

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, "  "+h.styles.flag.Render(rpad(line.names, width))+"   "+line.usage)
	}
	return strings.Join(out, "\n")
}

// defaultValue returns the default worth showing, or "" for zero values.
func defaultValue(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "0s", "[]":
		return ""
	}
	if flag.Value.Type() == "string" {
		return fmt.Sprintf("%q", flag.DefValue)
	}
	return flag.DefValue
}

// envUsages lists the MDPREVIEW_* variables understood by the config loader.
func (h *HelpFormatter) envUsages() string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, "  "+h.styles.flag.Render(rpad(v.Name, width))+"   "+v.Description)
	}
	return strings.Join(lines, "\n")
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
