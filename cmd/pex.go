package cmd

import (
	"log"
	"os"

	"github.com/findy-network/findy-test-vectors/agent/utils"
	"github.com/findy-network/findy-test-vectors/agent/vectors"
	"github.com/findy-network/findy-test-vectors/agent/w3c"
	"github.com/findy-network/findy-test-vectors/cmds/pex"
	"github.com/findy-network/findy-test-vectors/completionhelp"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var pexDoc = `Generates the Presentation Exchange submission test vector.

The presentation definition and the W3C AnonCreds credential are read from
the vectors directory. The definition is validated, the credential evaluated
and selected, and the presentation with its submission is written. The run
stops at the first error status. The default definition is written to the
vectors directory if it doesn't exist.

Example
	ftv pex \
		--vectors ./test-vectors \
		--definition dif-presentation-definition.json \
		--credential w3c-credential-anoncreds.json
`

var pexCmd = &cobra.Command{
	Use:   "pex",
	Short: "Generates the PEX presentation submission test vector",
	Long:  pexDoc,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(pexEnvs, "PEX")
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		c := submissionCmd()
		try.To(c.Validate())
		if rootFlags.dryRun {
			printCmd(c)
			return nil
		}
		try.To1(c.Exec(os.Stdout))
		return nil
	},
}

var pexEnvs = map[string]string{
	"definition":              "DEFINITION",
	"credential":              "CREDENTIAL",
	"out":                     "OUT",
	"limit-disclosure-suites": "LIMIT_DISCLOSURE_SUITES",
}

var pexSubmissionCmd = pex.SubmissionCmd{}

func submissionCmd() pex.SubmissionCmd {
	c := pexSubmissionCmd
	c.VectorsDir = utils.Settings.VectorsDir()
	return c
}

func vectorFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return completionhelp.VectorFiles(utils.Settings.VectorsDir()), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := pexCmd.Flags()
	flags.StringVar(&pexSubmissionCmd.Definition, "definition", vectors.PresentationDefinitionFile,
		flagInfo("presentation definition file in vectors dir", pexCmd.Name(), pexEnvs["definition"]))
	flags.StringVar(&pexSubmissionCmd.Credential, "credential", vectors.W3CCredentialFile,
		flagInfo("W3C credential file in vectors dir", pexCmd.Name(), pexEnvs["credential"]))
	flags.StringVar(&pexSubmissionCmd.Out, "out", vectors.PresentationSubmissionFile,
		flagInfo("output file in vectors dir", pexCmd.Name(), pexEnvs["out"]))
	flags.StringSliceVar(&pexSubmissionCmd.LimitDisclosureSuites, "limit-disclosure-suites",
		[]string{w3c.DataIntegrityProofType},
		flagInfo("proof types for which limit_disclosure is applied", pexCmd.Name(), pexEnvs["limit-disclosure-suites"]))

	try.To(pexCmd.RegisterFlagCompletionFunc("definition", vectorFiles))
	try.To(pexCmd.RegisterFlagCompletionFunc("credential", vectorFiles))

	rootCmd.AddCommand(pexCmd)
}
