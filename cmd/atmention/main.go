package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xlab/treeprint"

	"github.com/iw2rmb/atmention"
	"github.com/iw2rmb/atmention/internal/logging"
	"github.com/iw2rmb/atmention/mention"
)

// errAborted reports that the user quit without submitting.
var errAborted = errors.New("aborted")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errAborted) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:   "atmention",
		Short: "Edit text with @mentions in the terminal",
		Long: `atmention opens a one-field editor. Type the trigger character and a
name to get suggestions; enter or tab inserts the mention.

On ctrl+d the text is printed with every mention replaced by its export
value, e.g. "ping @jdoe".`,
		Version:       atmention.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/atmention/config.yaml)")
	pf.String("pool", "", "YAML file with the mentionable entities")
	pf.String("trigger", "", "trigger character (default @)")
	pf.String("sentinel", "", "sentinel character or U+XXXX code point")
	pf.String("policy", "", "commit policy: span or replace-all")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "log file (default $XDG_CONFIG_HOME/atmention/atmention.log)")

	f := root.Flags()
	f.String("text", "", "initial text")
	f.Bool("read-only", false, "disable editing")

	bind := map[string]string{
		"pool":      "pool",
		"trigger":   "trigger",
		"sentinel":  "sentinel",
		"policy":    "policy",
		"log.level": "log-level",
		"log.file":  "log-file",
		"text":      "text",
		"read_only": "read-only",
	}
	for key, flag := range bind {
		fl := pf.Lookup(flag)
		if fl == nil {
			fl = f.Lookup(flag)
		}
		_ = opts.v.BindPFlag(key, fl)
	}

	root.AddCommand(newResolveCmd(opts), newPoolCmd(opts))
	return root
}

func (o *options) load() (settings, engineSettings, error) {
	s, err := loadSettings(o.v, o.configPath)
	if err != nil {
		return settings{}, engineSettings{}, err
	}
	es, err := s.engine()
	if err != nil {
		return settings{}, engineSettings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, es, nil
}

func openLog(s settings) (*logging.Logger, error) {
	level, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{Path: s.Log.File, Level: level})
}

func runEditor(cmd *cobra.Command, opts *options) error {
	s, es, err := opts.load()
	if err != nil {
		return err
	}
	log, err := openLog(s)
	if err != nil {
		return err
	}
	defer log.Close()

	pool, err := loadPool(s.Pool)
	if err != nil {
		return err
	}
	log.Info("starting", "version", atmention.Version(), "pool", len(pool), "policy", es.Policy.String())

	p := tea.NewProgram(
		newApp(s, es, pool, log, newSystemClipboard(log.Logger)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	a, ok := final.(app)
	if !ok || !a.done {
		return errAborted
	}
	out, err := a.Export()
	if err != nil {
		log.Error("export failed", "err", err)
		return fmt.Errorf("export: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve TEXT",
		Short: "Show how the candidate at the end of TEXT resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, es, err := opts.load()
			if err != nil {
				return err
			}
			pool, err := loadPool(s.Pool)
			if err != nil {
				return err
			}
			text := args[0]
			res, c, ok := mention.ResolveAt(text, len([]rune(text)), mention.Pool(pool...), es.Trigger)
			return writeResolution(cmd.OutOrStdout(), res, c, ok)
		},
	}
}

var (
	commitFormat = color.New(color.FgGreen, color.Bold).SprintFunc()
	showFormat   = color.New(color.FgCyan).SprintFunc()
	clearFormat  = color.New(color.FgHiBlack).SprintFunc()
	exportFormat = color.New(color.FgHiMagenta).SprintFunc()
)

func writeResolution(w io.Writer, res mention.Resolution, c mention.Candidate, ok bool) error {
	if !ok {
		_, err := fmt.Fprintln(w, clearFormat("no candidate"))
		return err
	}

	action := res.Action.String()
	switch res.Action {
	case mention.ActionCommit:
		action = commitFormat(action)
	case mention.ActionShow:
		action = showFormat(action)
	default:
		action = clearFormat(action)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "candidate %q at %d: %s\n", c.Text, c.Start, action)
	switch res.Action {
	case mention.ActionCommit:
		fmt.Fprintf(&sb, "  %s\t%s\n", res.Commit.FullLabel(), exportFormat(res.Commit.ExportValue()))
	case mention.ActionShow:
		for _, m := range res.Matches {
			fmt.Fprintf(&sb, "  %s\t%s\n", m.FullLabel(), exportFormat(m.ExportValue()))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func newPoolCmd(opts *options) *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Validate and list the configured pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.load()
			if err != nil {
				return err
			}
			pool, err := loadPool(s.Pool)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if tree {
				_, err := io.WriteString(w, poolTree(pool))
				return err
			}
			for _, e := range pool {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.FullLabel(), e.ExportValue(), e.Match); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "show entities with their aliases as a tree")
	return cmd
}

func poolTree(pool []mention.Entity) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("pool (%d)", len(pool)))
	for _, e := range pool {
		branch := tree.AddBranch(fmt.Sprintf("%s -> %s", e.FullLabel(), e.ExportValue()))
		branch.AddMetaNode("match", e.Match.String())
		for _, a := range e.Aliases {
			branch.AddMetaNode("alias", a)
		}
	}
	return tree.String()
}
