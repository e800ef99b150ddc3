package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/wavesplatform/gomint/pkg/client"
	"github.com/wavesplatform/gomint/pkg/proto"
)

const usage = `Usage: mintctl [flags] <command> [arguments]

Commands:
  info                               collection parameters and counters
  supply                             issued assets and the supply cap
  asset <id>                         asset record and its URI
  assets <address>                   assets held by the account
  issue <payment> [metadata]         pay for one asset, the caller receives it
  batch <recipient> <n> [template]   issue n assets to the recipient (operator)
  price <amount>                     set the unit price (operator)
  pause | unpause                    stop or resume paid issuance (operator)
  base <uri>                         set the metadata base pointer (operator)
  withdraw                           pay out the collected balance (operator)

Flags:
`

type command struct {
	minArgs int
	maxArgs int
	run     func(ctx context.Context, c *client.Client, args []string) (any, error)
}

var commands = map[string]command{
	"info": {run: func(ctx context.Context, c *client.Client, _ []string) (any, error) {
		info, _, err := c.Collection.Info(ctx)
		return info, err
	}},
	"supply": {run: func(ctx context.Context, c *client.Client, _ []string) (any, error) {
		s, _, err := c.Collection.Supply(ctx)
		return s, err
	}},
	"asset": {minArgs: 1, maxArgs: 1, run: func(ctx context.Context, c *client.Client, args []string) (any, error) {
		id, err := proto.NewAssetIDFromString(args[0])
		if err != nil {
			return nil, err
		}
		a, _, err := c.Assets.Get(ctx, id)
		return a, err
	}},
	"assets": {minArgs: 1, maxArgs: 1, run: func(ctx context.Context, c *client.Client, args []string) (any, error) {
		owner, err := proto.NewAddressFromString(args[0])
		if err != nil {
			return nil, err
		}
		acc, _, err := c.Assets.OfAccount(ctx, owner)
		return acc, err
	}},
	"issue": {minArgs: 1, maxArgs: 2, run: func(ctx context.Context, c *client.Client, args []string) (any, error) {
		payment, err := proto.ParseAmount(args[0])
		if err != nil {
			return nil, err
		}
		var metadata string
		if len(args) > 1 {
			metadata = args[1]
		}
		id, _, err := c.Assets.Issue(ctx, metadata, payment)
		return map[string]proto.AssetID{"id": id}, err
	}},
	"batch": {minArgs: 2, maxArgs: 3, run: func(ctx context.Context, c *client.Client, args []string) (any, error) {
		recipient, err := proto.NewAddressFromString(args[0])
		if err != nil {
			return nil, err
		}
		quantity, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid quantity '%s'", args[1])
		}
		var template string
		if len(args) > 2 {
			template = args[2]
		}
		ids, _, err := c.Operator.IssueBatch(ctx, recipient, quantity, template)
		return map[string][]proto.AssetID{"ids": ids}, err
	}},
	"price": {minArgs: 1, maxArgs: 1, run: func(ctx context.Context, c *client.Client, args []string) (any, error) {
		price, err := proto.ParseAmount(args[0])
		if err != nil {
			return nil, err
		}
		info, _, err := c.Operator.SetPrice(ctx, price)
		return info, err
	}},
	"pause": {run: func(ctx context.Context, c *client.Client, _ []string) (any, error) {
		info, _, err := c.Operator.SetPaused(ctx, true)
		return info, err
	}},
	"unpause": {run: func(ctx context.Context, c *client.Client, _ []string) (any, error) {
		info, _, err := c.Operator.SetPaused(ctx, false)
		return info, err
	}},
	"base": {minArgs: 1, maxArgs: 1, run: func(ctx context.Context, c *client.Client, args []string) (any, error) {
		info, _, err := c.Operator.SetMetadataBase(ctx, args[0])
		return info, err
	}},
	"withdraw": {run: func(ctx context.Context, c *client.Client, _ []string) (any, error) {
		amount, _, err := c.Operator.Withdraw(ctx)
		return map[string]proto.Amount{"amount": amount}, err
	}},
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	if err := run(args, stdout, stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "mintctl: %v\n", err)
		var reqErr *client.RequestError
		if errors.As(err, &reqErr) {
			return 3
		}
		return 1
	}
	return 0
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		baseURL string
		apiKey  string
		caller  string
		timeout time.Duration
	)
	fs := pflag.NewFlagSet("mintctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.StringVar(&baseURL, "url", "http://127.0.0.1:6870", "Base URL of the mint API.")
	fs.StringVar(&apiKey, "api-key", os.Getenv("MINT_API_KEY"), "API key of the operator routes.")
	fs.StringVar(&caller, "caller", os.Getenv("MINT_CALLER"), "Address of the calling account.")
	fs.DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout.")
	fs.Usage = func() {
		_, _ = fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command")
	}
	name, cmdArgs := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		return errors.Errorf("unknown command '%s'", name)
	}
	if len(cmdArgs) < cmd.minArgs || len(cmdArgs) > cmd.maxArgs {
		return errors.Errorf("command '%s' expects %s", name, expectedArgs(cmd))
	}

	opts := client.Options{BaseUrl: baseURL, ApiKey: apiKey}
	if caller != "" {
		a, err := proto.NewAddressFromString(caller)
		if err != nil {
			return errors.Wrapf(err, "invalid caller '%s'", caller)
		}
		opts.Caller = a
	}
	c, err := client.NewClient(opts)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := cmd.run(ctx, c, cmdArgs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func expectedArgs(cmd command) string {
	if cmd.minArgs == cmd.maxArgs {
		return fmt.Sprintf("%d argument(s)", cmd.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", cmd.minArgs, cmd.maxArgs)
}
