package main

import (
	"fmt"
	"os"

	"github.com/billdthompson/cogsci-auto-norm/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newInitConfigCmd(global *globalOptions, log *logrus.Logger) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the effective configuration to the config file",
		Long: `Write the configuration that "distill" and "extend" would use, after
environment and flag overrides, to the --config path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitConfig(log, global, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func runInitConfig(log *logrus.Logger, global *globalOptions, force bool) error {
	if _, err := os.Stat(global.configPath); err == nil && !force {
		return fmt.Errorf("init config: %s already exists (use --force to overwrite)",
			global.configPath)
	}
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	log.Infof("Writing configuration to %s", global.configPath)
	return config.Save(global.configPath, cfg)
}
