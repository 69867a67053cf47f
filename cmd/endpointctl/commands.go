package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/vast-data/go-endpoints/core"
	"github.com/vast-data/go-endpoints/openapi_schema"
)

type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintln(out, core.ClientVersion())
	return err
}

type DescribeCmd struct {
	EndpointFlags `embed:""`
}

func (c *DescribeCmd) Run(out io.Writer) error {
	ep, err := c.endpoint()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, core.Description(ep))
	return err
}

type URLCmd struct {
	EndpointFlags `embed:""`
	Typed         bool `help:"Print the parsed URL. Fails when the base URL is not absolute."`
}

func (c *URLCmd) Run(out io.Writer) error {
	ep, err := c.endpoint()
	if err != nil {
		return err
	}
	if !c.Typed {
		_, err = fmt.Fprintln(out, core.URLString(ep))
		return err
	}
	u := core.URL(ep)
	if u == nil {
		return fmt.Errorf("%w: %q", core.ErrInvalidURL, ep.BaseURL())
	}
	_, err = fmt.Fprintln(out, u.String())
	return err
}

type ParamsCmd struct {
	EndpointFlags `embed:""`
}

func (c *ParamsCmd) Run(out io.Writer) error {
	ep, err := c.endpoint()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "query:\n%s\nbody:\n%s\n",
		core.QueryParameters(ep).PrettyTable(),
		core.BodyParameters(ep).PrettyTable(),
	)
	return err
}

type CheckCmd struct {
	EndpointFlags `embed:""`
	Schema        string `help:"OpenAPI document (.json, .yaml or .tar.gz)." required:"" type:"existingfile" short:"s"`
}

func (c *CheckCmd) Run(out io.Writer, logger *zap.Logger) error {
	ep, err := c.endpoint()
	if err != nil {
		return err
	}
	schema, err := openapi_schema.LoadFile(c.Schema)
	if err != nil {
		return err
	}
	logger.Debug("schema loaded", zap.String("file", c.Schema), zap.Int("paths", len(schema.Paths())))
	if err := schema.Check(ep); err != nil {
		return err
	}
	path, _, _ := schema.PathItem(ep)
	_, err = fmt.Fprintf(out, "%s %s matches %s %s\n", ep.Method(), ep.Path(), ep.Method(), path)
	return err
}

type CallCmd struct {
	EndpointFlags `embed:""`
	UserAgent     string        `help:"User-Agent header. A default naming this tool is sent otherwise." name:"user-agent" env:"ENDPOINTS_USER_AGENT"`
	Timeout       time.Duration `help:"Request timeout." default:"30s" env:"ENDPOINTS_TIMEOUT"`
	ServerVersion string        `help:"Version of the remote API, checked against --available-from." name:"server-version" env:"ENDPOINTS_SERVER_VERSION"`
	Output        string        `help:"Output format." enum:"table,json,raw" default:"table" short:"o"`
}

func (c *CallCmd) Run(out io.Writer, logger *zap.Logger) error {
	ep, err := c.endpoint()
	if err != nil {
		return err
	}
	timeout := c.Timeout
	session, err := core.NewSession(&core.Config{
		UserAgent:     c.UserAgent,
		Timeout:       &timeout,
		ServerVersion: c.ServerVersion,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	response, err := session.Do(ctx, ep)
	if err != nil {
		return err
	}

	if c.Output == "raw" {
		_, err = out.Write(response.Body)
		return err
	}
	renderable, err := response.Renderable()
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if c.Output == "json" {
		_, err = fmt.Fprintln(out, renderable.PrettyJson("  "))
	} else {
		_, err = fmt.Fprintln(out, renderable.PrettyTable())
	}
	return err
}
