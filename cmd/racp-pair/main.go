// Command racp-pair is an interactive demonstration of the RACP pairing
// and command-authentication flow.
//
// It runs a device-side pairing coordinator and a controller identity in a
// single process so the whole handshake can be exercised from one prompt:
//
//	racp-pair [flags]
//
// Flags:
//
//	-config string      YAML configuration file path
//	-ttl duration       Pairing code TTL (default 5m)
//	-attempts int       Wrong-code attempts before lockout (default 3)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-version            Print the protocol version and exit
//
// Session commands:
//
//	code              generate (or redisplay) the device pairing code
//	payload           print the QR payload the device would display
//	enter <code>      enter the code as the controller
//	exchange          complete the key exchange
//	send <type>       sign a command as device, verify as controller
//	status            show coordinator state and attempts
//	reset             reset the pairing coordinator
//	exit              quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/racp-protocol/racp-go/pkg/version"
)

// Config holds the demo configuration.
type Config struct {
	ConfigFile  string
	CodeTTL     time.Duration
	MaxAttempts int
	LogLevel    string
}

var config Config

func main() {
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file path")
	flag.DurationVar(&config.CodeTTL, "ttl", 5*time.Minute, "Pairing code TTL")
	flag.IntVar(&config.MaxAttempts, "attempts", 3, "Wrong-code attempts before lockout")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "Print the protocol version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("racp-pair protocol version %s\n", version.Current)
		return
	}

	if config.ConfigFile != "" {
		if err := loadConfigFile(config.ConfigFile, &config); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(config.LogLevel),
	}))

	sess, err := newPairSession(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := sess.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
