package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// helpEntry is one line of a help section: a styled name, its help text and
// an optional default shown after it.
type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

// StyledHelpPrinter returns a kong help printer that renders with Lipgloss.
// "jivecut <command> --help" describes only that command and the global
// flags.
func StyledHelpPrinter(kong.HelpOptions) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Model.Node
		if selected := ctx.Selected(); selected != nil {
			node = selected
		}
		writeHelp(ctx.Stdout, ctx.Model.Name, ctx.Model.Help, ctx.Model.Node, node)
		return nil
	}
}

func writeHelp(w io.Writer, app, description string, root, node *kong.Node) {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Jivecut ✂"))
	sb.WriteString("\n")
	sb.WriteString(helpDescStyle.Render(description))
	sb.WriteString("\n")

	sb.WriteString(helpSectionStyle.Render("Usage:"))
	sb.WriteString("\n  " + usageLine(app, node) + "\n")
	if node != root && node.Help != "" {
		sb.WriteString("\n  " + node.Help + "\n")
	}

	writeSection(&sb, "Commands:", helpArgStyle, commandEntries(node), 12)
	writeSection(&sb, "Arguments:", helpArgStyle, argumentEntries(node), 0)
	writeSection(&sb, "Flags:", helpFlagStyle, flagEntries(root, node), 0)

	sb.WriteString("\n")
	fmt.Fprint(w, sb.String())
}

// writeSection renders a titled list, padding names to pad columns when
// pad is positive. Empty sections are omitted.
func writeSection(sb *strings.Builder, title string, style lipgloss.Style, entries []helpEntry, pad int) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		name := e.name
		if pad > 0 {
			name = fmt.Sprintf("%-*s", pad, name)
		}
		sb.WriteString("  " + style.Render(name))
		if e.help != "" {
			sb.WriteString("  " + e.help)
		}
		if e.defaultVal != "" {
			sb.WriteString(" " + helpDefaultStyle.Render("(default: "+e.defaultVal+")"))
		}
		sb.WriteString("\n")
	}
}

func usageLine(app string, node *kong.Node) string {
	if node.Type != kong.CommandNode {
		return app + " <command> [flags]"
	}
	parts := []string{app, node.Path(), "[flags]"}
	for _, arg := range node.Positional {
		parts = append(parts, arg.Summary())
	}
	return strings.Join(parts, " ")
}

func commandEntries(node *kong.Node) []helpEntry {
	var entries []helpEntry
	for _, child := range node.Children {
		if !child.Hidden {
			entries = append(entries, helpEntry{name: child.Name, help: child.Help})
		}
	}
	return entries
}

func argumentEntries(node *kong.Node) []helpEntry {
	entries := make([]helpEntry, 0, len(node.Positional))
	for _, arg := range node.Positional {
		entries = append(entries, helpEntry{name: arg.Summary(), help: arg.Help})
	}
	return entries
}

// flagEntries lists the application-wide flags followed by those of the
// selected command
func flagEntries(root, node *kong.Node) []helpEntry {
	entries := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	nodes := []*kong.Node{root}
	if node != root {
		nodes = append(nodes, node)
	}
	for _, n := range nodes {
		for _, f := range n.Flags {
			if f.Name == "help" || f.Hidden {
				continue
			}
			entry := helpEntry{name: flagName(f), help: f.Help}
			if f.HasDefault {
				entry.defaultVal = f.Default
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

func flagName(f *kong.Flag) string {
	name := "--" + f.Name
	if f.Short != 0 {
		name = fmt.Sprintf("-%c, %s", f.Short, name)
	}
	if !f.IsBool() && f.PlaceHolder != "" {
		name += "=" + strings.ToUpper(f.PlaceHolder)
	}
	return name
}
