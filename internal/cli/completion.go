package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dataFileExts are the data file extensions offered when completing the
// file argument of render, serve and watch.
var dataFileExts = []string{"json", "yaml", "yml", "toml"}

// completeDataFiles completes the single data file argument.
func completeDataFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return dataFileExts, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Subcommands, flags and data files complete: the file argument of render,
serve and watch only offers .json, .yaml, .yml and .toml files.

  bash        source <(burst completion bash)
  zsh         burst completion zsh > "${fpath[1]}/_burst"
  fish        burst completion fish > ~/.config/fish/completions/burst.fish
  powershell  burst completion powershell | Out-String | Invoke-Expression

Start a new shell after installing a script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
