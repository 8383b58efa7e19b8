package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/ganpi-go/internal/application/config"
	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/ganpi-go/internal/infrastructure/config"
	"github.com/doeshing/ganpi-go/internal/infrastructure/security"
	"github.com/doeshing/ganpi-go/internal/pkg/filesystem"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(env *Env) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect GANPI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), env)
		},
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show full configuration (API key masked)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd.Context(), env)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(env.Out, configinfra.NewFileLoader(env.Flags.ConfigPath).Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value by dotted key (e.g. cache.ttl)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return getConfigurationValue(cmd.Context(), env, args[0])
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value (value accepts YAML syntax)",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setConfigurationValue(cmd.Context(), env, args[0], strings.Join(args[1:], " "))
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := configinfra.NewFileLoader(env.Flags.ConfigPath).Load(cmd.Context())
				if err != nil {
					return err
				}
				if err := configapp.Validate(cfg); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				fmt.Fprintln(env.Out, msgConfigurationValid)
				return nil
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show diff versus default configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := configinfra.NewFileLoader(env.Flags.ConfigPath).Load(cmd.Context())
				if err != nil {
					return err
				}
				diff := cmp.Diff(configinfra.DefaultConfig(), helpers.RedactConfig(cfg))
				if diff == "" {
					fmt.Fprintln(env.Out, msgNoDifferencesFromDefault)
					return nil
				}
				fmt.Fprintln(env.Out, diff)
				return nil
			},
		},
		newConfigRulesCommand(env),
	)
	return configCmd
}

func newConfigRulesCommand(env *Env) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the classifier tables in effect, or write the default rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				return writeDefaultRules(cmd.Context(), env)
			}
			c, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(c.Classifier.Tables())
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "# dialect: %s\n%s", c.Dialect.Name(), data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "init", false, "Write the built-in tables to the rules file if it does not exist")
	return cmd
}

func writeDefaultRules(ctx context.Context, env *Env) error {
	cfg, err := configinfra.NewFileLoader(env.Flags.ConfigPath).Load(ctx)
	if err != nil {
		return err
	}
	path := filesystem.ExpandPath(cfg.Security.RulesFile)
	if path == "" {
		path = filepath.Join(filesystem.AppDir(), "rules.yaml")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	data, err := security.DefaultRulesYAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, domain.SecureFilePermissions); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Rules written to %s\n", path)
	return nil
}

// showConfiguration displays the configuration in YAML format
func showConfiguration(ctx context.Context, env *Env) error {
	loader := configinfra.NewFileLoader(env.Flags.ConfigPath)
	cfg, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	data, err := yaml.Marshal(helpers.RedactConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Fprintf(env.Out, "# %s\n%s", loader.Path(), data)
	return nil
}

func getConfigurationValue(ctx context.Context, env *Env, keyPath string) error {
	cfg, err := configinfra.NewFileLoader(env.Flags.ConfigPath).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	value, err := helpers.GetConfigValue(helpers.RedactConfig(cfg), keyPath)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	fmt.Fprint(env.Out, string(data))
	return nil
}

// setConfigurationValue writes through the loader without building the
// container, so a broken config can still be repaired from the CLI.
func setConfigurationValue(ctx context.Context, env *Env, keyPath, value string) error {
	loader := configinfra.NewFileLoader(env.Flags.ConfigPath).WithEnv(configFileOnly)
	cfg, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	updated, err := helpers.SetConfigValue(cfg, keyPath, value)
	if err != nil {
		return err
	}
	if err := helpers.SaveConfigWithValidation(loader, updated); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Updated %s in %s\n", keyPath, loader.Path())
	return nil
}

// configFileOnly keeps GANPI_CONFIG but hides the key and model overrides so
// they are not persisted by a set.
func configFileOnly(name string) string {
	if name == "GANPI_CONFIG" {
		return os.Getenv(name)
	}
	return ""
}
