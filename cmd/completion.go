package cmd

import (
	"os"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generates shell completion scripts",
	Long: `
To load completion run following:

bash:
	source <(ftv completion bash)

zsh:
	source <(ftv completion zsh)

fish:
	ftv completion fish | source

To configure your shell to load completions for each session add command
above to your shell configuration script (e.g. .bash_profile/.zshrc).

`,
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(_ *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		switch args[0] {
		case "bash":
			try.To(rootCmd.GenBashCompletionV2(os.Stdout, true))
		case "zsh":
			try.To(rootCmd.GenZshCompletion(os.Stdout))
		case "fish":
			try.To(rootCmd.GenFishCompletion(os.Stdout, true))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
