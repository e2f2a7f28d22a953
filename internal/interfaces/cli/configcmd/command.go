package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"habita/internal/infrastructure/config"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newShowCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Long:  `Print the effective configuration after merging the config file, environment variables and defaults. Secrets are redacted.`,
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	redacted := *cfg
	if redacted.Database.Password != "" {
		redacted.Database.Password = "********"
	}
	if redacted.Auth.JWT.Secret != "" {
		redacted.Auth.JWT.Secret = "********"
	}
	if redacted.Email.SMTPPassword != "" {
		redacted.Email.SMTPPassword = "********"
	}
	if redacted.Redis.Password != "" {
		redacted.Redis.Password = "********"
	}
	if redacted.Payment.AccessToken != "" {
		redacted.Payment.AccessToken = "********"
	}

	out, err := yaml.Marshal(redacted)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Print(string(out))
	return nil
}
