package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agenthands/cscan/pkg/automata"
	"github.com/agenthands/cscan/pkg/option"
)

func newAutomataCmd(vp *viper.Viper) *cobra.Command {
	automataCmd := &cobra.Command{
		Use:   "automata",
		Short: "Inspect automaton definitions",
	}
	automataCmd.AddCommand(
		newAutomataDumpCmd(vp),
		newAutomataCheckCmd(),
	)
	return automataCmd
}

func newAutomataDumpCmd(vp *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the automaton definitions in use as YAML",
		Long: `Print the automaton definitions in use as YAML. Without --automata-file
this is the built-in set, which makes a starting point for a custom file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := loadDefinitions(vp.GetString(option.AutomataFile))
			if err != nil {
				return err
			}
			return automata.Dump(cmd.OutOrStdout(), defs)
		},
	}
}

func newAutomataCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate an automaton definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := automata.LoadFile(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 5, 0, 3, ' ', 0)
			fmt.Fprintln(w, "Priority\tName\tCategory\tStates\tColumns")
			for i, def := range defs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", i, def.Name, def.Category, len(def.Table)-1, def.Vocab.Width())
			}
			return w.Flush()
		},
	}
}
