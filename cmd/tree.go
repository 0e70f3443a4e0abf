package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var treeDoc = `Prints the ftv command structure.

The whole command structure is printed if no argument is given.
If command name is given as argument, only specified command structure is printed.
(Command must be direct subcommand of the root command.)
`

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Prints the ftv command structure",
	Long:  treeDoc,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)
		c := rootCmd
		if len(args) > 0 {
			c, _ = try.To2(rootCmd.Find(args))
		}
		printStructure(os.Stdout, c, "", 0, true)
		return nil
	},
}

func printStructure(w io.Writer, cmd *cobra.Command, insertion string, level int, last bool) {
	if deepLimit != 0 && level >= deepLimit {
		return
	}
	fmt.Fprint(w, insertion)
	if last {
		insertion += " "
		fmt.Fprint(w, "└── ")
	} else {
		insertion += "│"
		fmt.Fprint(w, "├── ")
	}
	insertion += "   "
	fmt.Fprintln(w, cmd.Name())
	for i, subCmd := range cmd.Commands() {
		last := i == len(cmd.Commands())-1
		printStructure(w, subCmd, insertion, level+1, last)
	}
}

var deepLimit int

func init() {
	treeCmd.PersistentFlags().IntVarP(&deepLimit, "level", "L", 0, "level of the tree, zero is ignored")
	rootCmd.AddCommand(treeCmd)
}
