// ABOUTME: instructions subcommands: show, edit, path, and reset for the template
// ABOUTME: edit opens $EDITOR on the real file; reset asks before overwriting

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptboost/promptboost/internal/config"
	"github.com/promptboost/promptboost/internal/editor"
	"github.com/promptboost/promptboost/internal/instructions"
	"github.com/promptboost/promptboost/internal/tui"
)

var instructionsResetCmdForce bool

var instructionsCmd = &cobra.Command{
	Use:   "instructions",
	Short: "Manage the instruction template",
	Long: "Manage the instruction template that frames every boost request.\n" +
		"The template is a markdown file with optional frontmatter; a missing or\n" +
		"blank file falls back to the built-in default.",
}

var instructionsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active instruction template",
	Args:  cobra.NoArgs,
	RunE:  runInstructionsShow,
}

var instructionsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the instruction template in $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runInstructionsEdit,
}

var instructionsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the instruction template's file path",
	Args:  cobra.NoArgs,
	RunE:  runInstructionsPath,
}

var instructionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in instruction template",
	Args:  cobra.NoArgs,
	RunE:  runInstructionsReset,
}

func init() {
	instructionsResetCmd.Flags().BoolVar(&instructionsResetCmdForce, "force", false, "overwrite without asking")
	instructionsCmd.AddCommand(instructionsShowCmd)
	instructionsCmd.AddCommand(instructionsEditCmd)
	instructionsCmd.AddCommand(instructionsPathCmd)
	instructionsCmd.AddCommand(instructionsResetCmd)
	rootCmd.AddCommand(instructionsCmd)
}

func runInstructionsShow(cmd *cobra.Command, _ []string) error {
	printText(cmd.OutOrStdout(), instructions.Read(config.GlobalDir()))
	return nil
}

func runInstructionsEdit(cmd *cobra.Command, _ []string) error {
	if err := instructions.EnsureExists(config.GlobalDir()); err != nil {
		return err
	}
	path := instructions.Path(config.GlobalDir())
	if err := editor.Open(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err == nil && strings.TrimSpace(string(data)) == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "instruction file is blank; the built-in default applies")
	}
	return nil
}

func runInstructionsPath(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), instructions.Path(config.GlobalDir()))
	return nil
}

func runInstructionsReset(cmd *cobra.Command, _ []string) error {
	if !instructionsResetCmdForce {
		if !tui.IsInteractive() {
			return errors.New("pass --force to reset without an interactive terminal")
		}
		ok, err := tui.InteractiveUI{}.Confirm(cmd.Context(), "Replace the instruction template with the built-in default?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "reset aborted")
			return nil
		}
	}

	if err := instructions.Reset(config.GlobalDir()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "instruction template reset to the built-in default (%s)\n", instructions.Path(config.GlobalDir()))
	return nil
}
