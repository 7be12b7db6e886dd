package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/thanhnp/psbt-apis/internal/inspect"
)

var (
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "network to encode addresses for, defaults to the configured network",
	}
	fileFlag = &cli.StringFlag{
		Name:  "file",
		Usage: "read the base64 PSBT from a file instead of the argument or stdin",
	}
)

var parseCommand = cli.Command{
	Name:      "parse",
	Usage:     "Print the summary of a base64 PSBT",
	ArgsUsage: "[psbt]",
	Flags:     []cli.Flag{networkFlag, fileFlag},
	Action:    parseAction,
}

func parseAction(ctx *cli.Context) error {
	psbtBase64, err := readPsbt(ctx)
	if err != nil {
		return err
	}

	network := ctx.String(networkFlag.Name)
	if network == "" {
		network = getConfig(ctx).DefaultNetwork
	}

	summary, err := inspect.ParseString(psbtBase64, network)
	if err != nil {
		return err
	}

	return printJSON(ctx.App.Writer, summary)
}

func readPsbt(ctx *cli.Context) (string, error) {
	if path := ctx.String(fileFlag.Name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read psbt file: %w", err)
		}
		return string(data), nil
	}

	switch ctx.NArg() {
	case 0:
		data, err := io.ReadAll(ctx.App.Reader)
		if err != nil {
			return "", fmt.Errorf("failed to read psbt from stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("missing psbt")
		}
		return string(data), nil
	case 1:
		return ctx.Args().First(), nil
	default:
		return "", fmt.Errorf("expected one psbt argument, got %d", ctx.NArg())
	}
}
