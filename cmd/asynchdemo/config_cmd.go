package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindRunFlags(v, cmd.Flags())
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			out, err := marshalConfig(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

// yamlConfig mirrors Config with durations rendered as strings.
type yamlConfig struct {
	Config `yaml:",inline"`
	Idle   string `yaml:"idle"`
}

func marshalConfig(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(yamlConfig{Config: cfg, Idle: cfg.Idle.String()})
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
