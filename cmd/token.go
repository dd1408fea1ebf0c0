package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"teamlens/internal/contract"
)

// tokenCmd manages the stored API bearer token.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the chat completions API token",
	Long: `Manage the bearer token used for AI-backed expertise analysis.

The token is resolved in order:
1. The ` + contract.TokenEnvVar + ` environment variable
2. The token file under the user config directory (mode 0600)

Without a token, analysis still works using local commit statistics.

Subcommands:
  set    - Store a token
  status - Show whether a token is configured
  clear  - Remove the stored token`,
}

// tokenSetCmd stores a token from the argument or stdin.
var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store the API token in the user config directory",
	Long: `Persist the API token for future analysis runs.

The token can be passed as an argument or piped via stdin:

  teamlens token set ghp_xxxx
  echo "$MY_TOKEN" | teamlens token set`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				contract.LogFatal("Cannot read token from stdin", err)
			}
			token = strings.TrimSpace(line)
		}
		store := &contract.TokenStore{}
		if err := store.Set(token); err != nil {
			contract.LogFatal("Cannot store token", err)
		}
		fmt.Println("Token stored successfully.")
	},
}

// tokenStatusCmd reports whether a token is available.
var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API token is configured",
	Run: func(_ *cobra.Command, _ []string) {
		store := &contract.TokenStore{}
		token, err := store.Get()
		if err != nil {
			contract.LogFatal("Cannot resolve token", err)
		}
		switch {
		case token == "":
			fmt.Println("No token configured. Analysis will use local commit statistics.")
		case os.Getenv(contract.TokenEnvVar) != "":
			fmt.Printf("Token configured via %s.\n", contract.TokenEnvVar)
		default:
			fmt.Println("Token configured via token file.")
		}
	},
}

// tokenClearCmd removes the stored token file.
var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API token",
	Run: func(_ *cobra.Command, _ []string) {
		store := &contract.TokenStore{}
		if err := store.Clear(); err != nil {
			contract.LogFatal("Cannot clear token", err)
		}
		fmt.Println("Token cleared successfully.")
	},
}
