package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags overlays cfg with command-line flags and returns the
// positional arguments that follow them.
//
//	-a string   address and port of the gatekeeper gRPC endpoint
//	-t int      request timeout in seconds
//	-c, -config path of the JSON config file (consumed by parseJson)
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("gatectl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.String("c", "", "config file")
	fs.String("config", "", "config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return fs.Args(), nil
}
