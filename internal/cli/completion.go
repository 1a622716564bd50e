package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for lamina.

To load completions in the current shell:

  bash:  source <(lamina completion bash)
  zsh:   lamina completion zsh > "${fpath[1]}/_lamina"
  fish:  lamina completion fish | source

To install them permanently, redirect the output to your shell's
completion directory, e.g.:

  lamina completion bash > /etc/bash_completion.d/lamina
  lamina completion fish > ~/.config/fish/completions/lamina.fish

PowerShell users can pipe the script through Invoke-Expression or
source it from their profile:

  lamina completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
