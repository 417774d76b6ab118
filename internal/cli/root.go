package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCommand builds the complete command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	version := resolvedVersion(deps.Version)
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "logtrip",
		Short: "Sum the great-circle distance along a stream of position records read from stdin.",
		Long: "Reads one record per line from stdin, pairs consecutive positions and prints the\n" +
			"cumulative haversine distance. The first malformed line aborts the run.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
				return errVersionShown
			}
			return runTotal(cmd, deps, flags)
		},
	}
	root.Flags().BoolP("version", "v", false, "Show version and exit.")
	addGlobalFlags(root, flags)
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	defaultHelpFunc := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			renderRootHelp(cmd.OutOrStdout(), root)
			return
		}
		defaultHelpFunc(cmd, args)
	})

	root.AddCommand(newSummaryCommand(deps, flags))
	root.AddCommand(newExportCommand(deps, flags))
	root.AddCommand(newConfigureCommand(deps, flags))
	root.AddCommand(newVersionCommand(version))

	return root
}

// totalPayload is the machine-readable form of the root command result.
type totalPayload struct {
	Distance float64 `json:"distance" yaml:"distance"`
	Unit     string  `json:"unit" yaml:"unit"`
	Records  int     `json:"records" yaml:"records"`
	Pairs    int     `json:"pairs" yaml:"pairs"`
}

func runTotal(cmd *cobra.Command, deps Dependencies, flags *globalFlags) error {
	r, err := prepareRun(cmd, deps, flags)
	if err != nil {
		return err
	}
	summary, err := accumulate(cmd, r, nil)
	if err != nil {
		return err
	}
	text, value := roundedDistance(summary.Distance, r.settings.Precision)
	return writeResult(cmd, r, inputOf(summary), text, totalPayload{
		Distance: value,
		Unit:     string(summary.Unit),
		Records:  summary.Records,
		Pairs:    summary.Pairs,
	})
}

func renderRootHelp(out io.Writer, root *cobra.Command) {
	_, _ = fmt.Fprintf(out, "%s: %s\n\n", root.Name(), root.Short)
	_, _ = fmt.Fprintf(out, "usage: %s [command] [options] < records\n", root.Name())
	_, _ = fmt.Fprintln(out, "options:")
	for _, option := range rootOptions(root) {
		_, _ = fmt.Fprintf(out, "  %s%s: %s\n", option.token, optionLabels(option), option.usage)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "commands:")
	for _, cmd := range visibleCommands(root) {
		_, _ = fmt.Fprintf(out, "  %s\n", cmd.Name())
		_, _ = fmt.Fprintf(out, "    %s\n", cmd.Short)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "notes:")
	_, _ = fmt.Fprintln(out, `  - each input line is a JSON object such as {"latitude": 60.17, "longitude": 24.94}; other fields are ignored.`)
	_, _ = fmt.Fprintln(out, "  - distances use the haversine formula on a sphere of radius 6371.0088 km.")
	_, _ = fmt.Fprintln(out, "  - settings resolve from flags, then LOGTRIP_* environment, then the config file.")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "full reference:")
	emitReference(out, root, root.Name())
}

func visibleCommands(parent *cobra.Command) []*cobra.Command {
	commands := make([]*cobra.Command, 0)
	for _, cmd := range parent.Commands() {
		if cmd.Hidden {
			continue
		}
		commands = append(commands, cmd)
	}
	return commands
}

func emitReference(out io.Writer, parent *cobra.Command, path string) {
	for _, cmd := range visibleCommands(parent) {
		signature := strings.TrimSpace(path + " " + cmd.Use)
		_, _ = fmt.Fprintf(out, "- %s\n", signature)
		_, _ = fmt.Fprintf(out, "  %s\n", cmd.Short)
		options := collectOptionDocs(cmd.LocalNonPersistentFlags(), false)
		if len(options) > 0 {
			_, _ = fmt.Fprintln(out, "  options:")
			for _, option := range options {
				_, _ = fmt.Fprintf(out, "    %s%s: %s\n", option.token, optionLabels(option), option.usage)
			}
		}
		_, _ = fmt.Fprintln(out)
		emitReference(out, cmd, strings.TrimSpace(path+" "+cmd.Name()))
	}
}

type optionDoc struct {
	name       string
	token      string
	usage      string
	defaultVal string
	persistent bool
}

func rootOptions(root *cobra.Command) []optionDoc {
	options := collectOptionDocs(root.LocalNonPersistentFlags(), false)
	options = append(options, collectOptionDocs(root.PersistentFlags(), true)...)
	return options
}

func collectOptionDocs(flags *pflag.FlagSet, persistent bool) []optionDoc {
	options := make([]optionDoc, 0)
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden || flag.Name == "help" {
			return
		}
		options = append(options, optionDoc{
			name:       flag.Name,
			token:      flagToken(flag),
			usage:      strings.TrimSpace(flag.Usage),
			defaultVal: flagDefault(flag),
			persistent: persistent,
		})
	})
	sort.Slice(options, func(i, j int) bool {
		return options[i].name < options[j].name
	})
	return options
}

func flagToken(flag *pflag.Flag) string {
	token := "--" + flag.Name
	if flag.Shorthand != "" {
		token += "/-" + flag.Shorthand
	}
	return token
}

func flagDefault(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "[]":
		return ""
	default:
		return flag.DefValue
	}
}

func optionLabels(option optionDoc) string {
	labels := make([]string, 0, 2)
	if option.defaultVal != "" {
		labels = append(labels, "default "+option.defaultVal)
	}
	if option.persistent {
		labels = append(labels, "global")
	}
	if len(labels) == 0 {
		return ""
	}
	return " [" + strings.Join(labels, ", ") + "]"
}
