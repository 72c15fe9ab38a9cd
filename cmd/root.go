package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/quash-sh/quash/core/config"
	"github.com/quash-sh/quash/core/env"
	"github.com/quash-sh/quash/core/jobs"
	"github.com/quash-sh/quash/core/shell"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	return config.Load(afero.NewOsFs(), cfgPath)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "quash",
	Short: "Quite a shell",
	Long:  `An interactive command shell with pipes, redirection and background jobs.`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sh, err := shell.New(cfg, env.NewOSEnv(), jobs.NewTable())
		if err != nil {
			return err
		}
		defer sh.Close()

		return sh.Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
