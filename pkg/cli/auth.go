package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mchmarny/modeltrust/pkg/auth"
	urfave "github.com/urfave/cli/v2"
)

var (
	tokenFlag = &urfave.StringFlag{
		Name:  "token",
		Usage: "Secret value (omit to be prompted)",
	}

	authCmd = &urfave.Command{
		Name:            "auth",
		HideHelpCommand: true,
		Usage:           "Store service credentials in the OS keychain",
		Subcommands: []*urfave.Command{
			{
				Name:   "github",
				Usage:  "Store the GitHub API token",
				Flags:  []urfave.Flag{tokenFlag},
				Action: makeAuthAction(auth.KeyGitHubToken, "GitHub API token"),
			},
			{
				Name:   "llm",
				Usage:  "Store the LLM evaluator API key",
				Flags:  []urfave.Flag{tokenFlag},
				Action: makeAuthAction(auth.KeyLLMAPIKey, "LLM evaluator API key"),
			},
		},
	}
)

func makeAuthAction(name, label string) urfave.ActionFunc {
	return func(c *urfave.Context) error {
		secret := c.String(tokenFlag.Name)
		if secret == "" {
			var err error
			secret, err = promptSecret(label)
			if err != nil {
				return fmt.Errorf("reading secret: %w", err)
			}
		}

		cfg := getConfig(c)
		if err := auth.Save(cfg.HomeDir, name, secret); err != nil {
			return fmt.Errorf("saving secret: %w", err)
		}

		fmt.Printf("%s saved\n", label)
		return nil
	}
}

func promptSecret(label string) (string, error) {
	fmt.Printf("Paste the %s and hit enter:\n> ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
