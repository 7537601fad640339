package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/flagx"
)

// parseFlags overlays values from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC health bind address
//	-d string   MongoDB connection string
//	-n string   database name
//	-s string   session signing secret
//	-t int      session validity, minutes
//	-i int      health probe interval, seconds
//	-secure     mark cookies Secure
//
// os.Args is first filtered down to these flags with flagx.FilterArgs so
// -c/-config and other components' flags do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-n", "-s", "-t", "-i", "-secure"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.MongoURI, "d", config.MongoURI, "MongoDB connection string")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing secret")

	sessionMinutes := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	healthSeconds := fs.Int("i", int(config.HealthCheckInterval.Seconds()), "health probe interval (in seconds)")

	fs.BoolVar(&config.SecureCookies, "secure", config.SecureCookies, "send cookies over HTTPS only")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations are only touched when given, so finer values from env or
	// JSON are not rounded to the flag's unit
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionValidityDuration = time.Duration(*sessionMinutes) * time.Minute
		case "i":
			config.HealthCheckInterval = time.Duration(*healthSeconds) * time.Second
		}
	})
}
