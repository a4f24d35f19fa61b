package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "ASYNCH"

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	root := &cobra.Command{
		Use:   "asynchdemo",
		Short: "Run a pipeline built from composed async channels",
		Long: `asynchdemo broadcasts a sequence of integers through a merge of
mailboxes and consumes it through a filter raced against an idle timer.

  asynchdemo run      # run the pipeline
  asynchdemo config   # print the effective configuration
  asynchdemo version  # print version information

Settings come from flags, then ASYNCH_* environment variables, then the
config file, then defaults.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (yaml or json)")
	root.PersistentFlags().String("log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().String("log-format", defaultLogFormat, "log format (json, console)")
	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(newRunCmd(v), newConfigCmd(v), newVersionCmd())
	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	return v.ReadInConfig()
}
