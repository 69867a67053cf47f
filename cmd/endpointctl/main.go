package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/vast-data/go-endpoints/internal/logging"
)

type CLI struct {
	Version  VersionCmd  `cmd:"" help:"Print version information."`
	Describe DescribeCmd `cmd:"" help:"Print the human-readable description of an endpoint."`
	URL      URLCmd      `cmd:"" name:"url" help:"Print the full URL of an endpoint."`
	Params   ParamsCmd   `cmd:"" help:"Print the query and body parameters of an endpoint."`
	Check    CheckCmd    `cmd:"" help:"Check an endpoint against an OpenAPI document."`
	Call     CallCmd     `cmd:"" help:"Send an endpoint and print the response."`
}

func newParser(cli *CLI, out io.Writer, logger *zap.Logger, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("endpointctl"),
		kong.Description("Describe, check and call HTTP endpoints declared from the command line."),
		kong.UsageOnError(),
		kong.BindTo(out, (*io.Writer)(nil)),
		kong.Bind(logger),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	logger, flush, err := logging.New(logging.OptionsFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "endpointctl: %v\n", err)
		os.Exit(1)
	}

	cli := &CLI{}
	parser, err := newParser(cli, os.Stdout, logger)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run()
	if err != nil {
		logger.Debug("command failed", zap.String("command", ctx.Command()), zap.Error(err))
	}
	flush()
	ctx.FatalIfErrorf(err)
}
