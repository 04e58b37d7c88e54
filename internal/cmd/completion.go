package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates a completion command for generating shell completion scripts
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:
  $ source <(stratcalc completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ stratcalc completion bash > /etc/bash_completion.d/stratcalc
  # macOS:
  $ stratcalc completion bash > $(brew --prefix)/etc/bash_completion.d/stratcalc

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ stratcalc completion zsh > "${fpath[1]}/_stratcalc"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ stratcalc completion fish | source

  # To load completions for each session, execute once:
  $ stratcalc completion fish > ~/.config/fish/completions/stratcalc.fish

PowerShell:
  PS> stratcalc completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> stratcalc completion powershell > stratcalc.ps1
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
			default:
				return fmt.Errorf("unsupported shell type: %s", args[0])
			}
		},
	}

	// Completion scripts need neither config nor log files
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return nil
	}

	return cmd
}
