// internal/cli/help.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/law-makers/websearch/internal/ui"
)

const helpWidth = 80

// renderHelp prints command help to the command's stdout
func renderHelp(cmd *cobra.Command, args []string) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "\n%s\n", ui.Style(ui.ColorBold+ui.ColorCyan, strings.ToUpper(cmd.Name())))
	if cmd.Short != "" {
		fmt.Fprintln(w, cmd.Short)
	}
	if cmd.Long != "" && cmd.Long != cmd.Short {
		fmt.Fprintf(w, "\n%s\n", wrapText(cmd.Long, helpWidth))
	}

	writeUsageLines(w, cmd)

	if cmd.HasExample() {
		section(w, "Examples")
		for _, line := range strings.Split(cmd.Example, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(line, "#"):
				fmt.Fprintf(w, "  %s\n", ui.Dim(line))
			default:
				fmt.Fprintf(w, "  %s\n", ui.Success("$ "+line))
			}
		}
	}

	writeCommands(w, cmd)

	if cmd.HasAvailableLocalFlags() {
		section(w, "Flags")
		writeFlags(w, cmd.LocalFlags())
	}
	if cmd.HasAvailableInheritedFlags() {
		section(w, "Global Flags")
		writeFlags(w, cmd.InheritedFlags())
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s <command> --help\" for more information about a command.", cmd.CommandPath())))
	}
	fmt.Fprintln(w)
}

// renderUsage prints the short usage shown after a flag or argument error
func renderUsage(cmd *cobra.Command) error {
	w := cmd.ErrOrStderr()

	writeUsageLines(w, cmd)
	writeCommands(w, cmd)
	if cmd.HasAvailableLocalFlags() {
		section(w, "Flags")
		writeFlags(w, cmd.LocalFlags())
	}
	fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s --help\" for more information.", cmd.CommandPath())))
	return nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", ui.Style(ui.ColorBold+ui.ColorWhite, title))
}

func writeUsageLines(w io.Writer, cmd *cobra.Command) {
	section(w, "Usage")
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", ui.Link(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s %s %s\n", ui.Link(cmd.CommandPath()), ui.Style(ui.ColorYellow, "<command>"), ui.Dim("[flags]"))
	}
}

func writeCommands(w io.Writer, cmd *cobra.Command) {
	if !cmd.HasAvailableSubCommands() {
		return
	}
	var subs []*cobra.Command
	width := 0
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() && c.Name() != "help" {
			subs = append(subs, c)
			width = max(width, len(c.Name()))
		}
	}

	section(w, "Commands")
	for _, c := range subs {
		fmt.Fprintf(w, "  %s  %s\n", ui.Link(fmt.Sprintf("%-*s", width, c.Name())), ui.Dim(c.Short))
	}
}

// writeFlags lists one flag per line, name column padded to a shared width
func writeFlags(w io.Writer, flags *pflag.FlagSet) {
	type row struct{ name, usage string }
	var rows []row
	width := 0

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		if typ, _ := pflag.UnquoteUsage(f); typ != "" {
			name += " " + typ
		}
		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		rows = append(rows, row{name, usage})
		width = max(width, len(name))
	})

	for _, r := range rows {
		fmt.Fprintf(w, "  %s  %s\n", ui.Success(fmt.Sprintf("%-*s", width, r.name)), ui.Dim(r.usage))
	}
}

// wrapText wraps each paragraph of text at width. List items starting
// with "-" keep their own line.
func wrapText(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		var lines []string
		var current string
		flush := func() {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
		}
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "-") {
				flush()
				lines = append(lines, line)
				continue
			}
			for _, word := range strings.Fields(line) {
				switch {
				case current == "":
					current = word
				case len(current)+1+len(word) <= width:
					current += " " + word
				default:
					lines = append(lines, current)
					current = word
				}
			}
		}
		flush()
		if len(lines) > 0 {
			out = append(out, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(out, "\n\n")
}
