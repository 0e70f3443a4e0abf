package cmd

import (
	"log"
	"os"

	"github.com/findy-network/findy-test-vectors/cmds/key"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var keyEnvs = map[string]string{
	"seed": "SEED",
}

// keyCmd represents the key subcommand
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Command for creating RAW wallet keys",
	Long: `
Command for creating RAW wallet keys, e.g. for the --export-key of the
anoncreds command. The key is random if no seed is given.

Example
	ftv key \
		--seed 00000000000000000000thisisa_test
	`,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(keyEnvs, "KEY")
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)
		try.To(keyCreateCmd.Validate())
		if rootFlags.dryRun {
			printCmd(keyCreateCmd)
			return nil
		}
		try.To1(keyCreateCmd.Exec(os.Stdout))
		return nil
	},
}

var keyCreateCmd = key.CreateCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	keyCmd.Flags().StringVar(&keyCreateCmd.Seed, "seed", "", flagInfo("seed for wallet key creation", keyCmd.Name(), keyEnvs["seed"]))

	rootCmd.AddCommand(keyCmd)
}
