package cmd

import (
	"os"

	"github.com/findy-network/findy-test-vectors/agent/vectors"
	"github.com/findy-network/findy-test-vectors/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var allDoc = `Generates all the test vectors.

Runs the anoncreds command and then the pex command with the credential the
first one wrote. The command has no flags of its own. The sub commands read
their settings from the environment (FTV_ANONCREDS_*, FTV_PEX_*) and the
config file, and use their defaults otherwise. FTV_PEX_CREDENTIAL is ignored,
pex always reads the credential the anoncreds step wrote.
`

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generates the AnonCreds and PEX test vectors",
	Long:  allDoc,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		setRequiredStringFlags(anoncredsCmd)
		setRequiredStringFlags(pexCmd)
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		gen := try.To1(generateCmd())
		sub := submissionCmd()
		sub.Credential = vectors.W3CCredentialFile

		all := []cmds.Command{gen, sub}
		for _, c := range all {
			try.To(c.Validate())
		}
		if rootFlags.dryRun {
			for _, c := range all {
				printCmd(c)
			}
			return nil
		}
		for _, c := range all {
			try.To1(c.Exec(os.Stdout))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
}
