package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP gateway bind address, empty disables it
//	-m string   metrics bind address, empty disables it
//	-d string   PostgreSQL DSN or memory://
//	-t int      token TTL, seconds
//	-x string   password hash algorithm (sha256, argon2id)
//	-p string   password pepper
//	-s bool     seed demo users (use -s=false to disable)
//	-r int      store connect timeout, seconds
//	-l string   log level
//
// The arguments are first filtered with flagx.FilterArgs, so flags meant for
// other components (such as -c) do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-m", "-d", "-t", "-x", "-p", "-s", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP gateway")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port to expose metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Seconds()), "token TTL (in seconds)")
	fs.StringVar(&config.PasswordHashAlgorithm, "x", config.PasswordHashAlgorithm, "password hash algorithm")
	fs.StringVar(&config.PasswordPepper, "p", config.PasswordPepper, "password pepper")
	fs.BoolVar(&config.SeedDemoUsers, "s", config.SeedDemoUsers, "seed demo users")
	connectTimeout := fs.Int("r", int(config.StoreConnectTimeout.Seconds()), "store connect timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenTTL = time.Duration(*tokenTTL) * time.Second
	config.StoreConnectTimeout = time.Duration(*connectTimeout) * time.Second
	return nil
}
