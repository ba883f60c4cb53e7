package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script for packforce, so chart
// paths and layout kinds complete on the command line.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print shell completion scripts for packforce",
		Long: `Generate shell completion scripts for packforce.

To load completions:

Bash:
  $ source <(packforce completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ packforce completion bash > /etc/bash_completion.d/packforce
  # macOS:
  $ packforce completion bash > $(brew --prefix)/etc/bash_completion.d/packforce

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ packforce completion zsh > "${fpath[1]}/_packforce"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ packforce completion fish | source

  # To load completions for each session, execute once:
  $ packforce completion fish > ~/.config/fish/completions/packforce.fish

PowerShell:
  PS> packforce completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> packforce completion powershell > packforce.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
