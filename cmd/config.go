package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nodewee/ocr2text/pkg/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persisted configuration",
		Long: `Manage persisted configuration settings.

Configuration is stored in ~/.ocr2text/config.yaml (override the directory
with OCR2TEXT_CONFIG_DIR). Environment variables and flags take precedence
over the file.

Examples:
  ocr2text config list
  ocr2text config get language
  ocr2text config set api_key K81234567
  ocr2text config set backend_timeout 45s`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all persisted settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listConfig(cmd.OutOrStdout())
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetConfigValue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], displayValue(args[0], value))
			return nil
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a specific setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetConfigValue(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Successfully set %s = %s\n", args[0], displayValue(args[0], args[1]))
			return nil
		},
	})

	return configCmd
}

// listConfig prints every persisted key with secrets masked
func listConfig(w io.Writer) error {
	configPath, err := config.GetConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "🛠️  Configuration")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "📁 Config file: %s\n\n", configPath)

	for _, key := range config.ListConfigKeys() {
		value, err := config.GetConfigValue(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-18s = %s\n", key, displayValue(key, value))
	}

	fmt.Fprintln(w, "\n💡 Tip: Use 'ocr2text config set <key> <value>' to change a setting")
	fmt.Fprintln(w, "💡 Note: Other settings (backend strategy, DPI, concurrency) are runtime-only")
	return nil
}

// displayValue masks the API key and marks empty values
func displayValue(key, value string) string {
	if value == "" {
		return "(not set)"
	}
	if key == "api_key" {
		return config.MaskSecret(value)
	}
	return value
}
