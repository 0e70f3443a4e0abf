package cmd

import (
	"log"
	"os"
	"time"

	"github.com/findy-network/findy-test-vectors/agent/fixture"
	"github.com/findy-network/findy-test-vectors/agent/utils"
	"github.com/findy-network/findy-test-vectors/cmds/anoncreds"
	"github.com/findy-network/findy-test-vectors/indy"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var anoncredsDoc = `Generates the AnonCreds test vectors with libindy.

Every object from the schema to the W3C presentation is written to the
vectors directory as soon as it's created. The issuer and holder wallets are
exported to the same directory, because the private material of the vectors
references their records. The RAW key of the exports, given or random, is
written to anoncreds-wallet-key.json in the same directory. The run fails if
the presentation doesn't verify.

Example
	ftv anoncreds \
		--vectors ./test-vectors \
		--tails-dir ./temp \
		--registry-index 9
`

var anoncredsCmd = &cobra.Command{
	Use:   "anoncreds",
	Short: "Generates the AnonCreds test vectors",
	Long:  anoncredsDoc,
	PreRunE: func(_ *cobra.Command, _ []string) (err error) {
		return BindEnvs(anoncredsEnvs, "ANONCREDS")
	},
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		c := try.To1(generateCmd())
		try.To(c.Validate())
		if rootFlags.dryRun {
			printCmd(c)
			return nil
		}
		try.To1(c.Exec(os.Stdout))
		return nil
	},
}

var anoncredsEnvs = map[string]string{
	"tails-dir":      "TAILS_DIR",
	"work-dir":       "WORK_DIR",
	"registry-index": "REGISTRY_INDEX",
	"issuance-date":  "ISSUANCE_DATE",
	"export-key":     "EXPORT_KEY",
	"keep-wallets":   "KEEP_WALLETS",
}

type anoncredsFlags struct {
	tailsDir      string
	workDir       string
	registryIndex int
	issuanceDate  string
	exportKey     string
	keepWallets   bool
}

var acFlags anoncredsFlags

func generateCmd() (c anoncreds.GenerateCmd, err error) {
	defer err2.Handle(&err, "issuance date")

	utils.Settings.SetTailsDir(acFlags.tailsDir)
	utils.Settings.SetWorkDir(acFlags.workDir)
	utils.Settings.SetKeepWallets(acFlags.keepWallets)

	return anoncreds.GenerateCmd{
		VectorsDir:    utils.Settings.VectorsDir(),
		TailsDir:      utils.Settings.TailsDir(),
		WorkDir:       utils.Settings.WorkDir(),
		RegistryIndex: acFlags.registryIndex,
		IssuanceDate:  try.To1(time.Parse(time.RFC3339, acFlags.issuanceDate)),
		ExportKey:     acFlags.exportKey,
		KeepWallets:   utils.Settings.KeepWallets(),
	}, nil
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := anoncredsCmd.Flags()
	flags.StringVar(&acFlags.tailsDir, "tails-dir", "./"+fixture.DefaultTailsDir,
		flagInfo("directory of the generated tails files", anoncredsCmd.Name(), anoncredsEnvs["tails-dir"]))
	flags.StringVar(&acFlags.workDir, "work-dir", utils.Settings.WorkDir(),
		flagInfo("libindy wallet directory", anoncredsCmd.Name(), anoncredsEnvs["work-dir"]))
	flags.IntVar(&acFlags.registryIndex, "registry-index", fixture.DefaultRegistryIndex,
		flagInfo("revocation registry index of the credential", anoncredsCmd.Name(), anoncredsEnvs["registry-index"]))
	flags.StringVar(&acFlags.issuanceDate, "issuance-date", fixture.DefaultIssuanceDate.Format(time.RFC3339),
		flagInfo("issuance date of the W3C credentials", anoncredsCmd.Name(), anoncredsEnvs["issuance-date"]))
	flags.StringVar(&acFlags.exportKey, "export-key", "",
		flagInfo("RAW key of the wallet exports, random if empty, written to "+indy.ExportKeyFile, anoncredsCmd.Name(), anoncredsEnvs["export-key"]))
	flags.BoolVar(&acFlags.keepWallets, "keep-wallets", false,
		flagInfo("keep the wallets in the work dir", anoncredsCmd.Name(), anoncredsEnvs["keep-wallets"]))

	try.To(anoncredsCmd.MarkFlagDirname("tails-dir"))
	try.To(anoncredsCmd.MarkFlagDirname("work-dir"))

	rootCmd.AddCommand(anoncredsCmd)
}
