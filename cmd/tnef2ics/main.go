package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"tnef2ics/internal/config"
	"tnef2ics/internal/convert"
	appLog "tnef2ics/internal/log"
	"tnef2ics/internal/tz"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func printHelp(w io.Writer) {
	fmt.Fprint(w, `tnef2ics - convert a TNEF meeting request (winmail.dat) to an .ics invite

USAGE:
    tnef2ics [OPTIONS] <input-path> [<output-path>]

    <output-path> defaults to the configured output (invite.ics in the
    current directory).

OPTIONS:
    -h, -help               Show this help message and exit
    -v                      Enable verbose output (DEBUG logs)
    -config FILE            YAML config file (optional)
    -zone-policy POLICY     utc (default) or offset
    -prodid STRING          PRODID of the generated calendar
    -charset NAME           Charset of 8-bit text (default windows-1252)
    -write-config FILE      Write the effective configuration to FILE and exit

CONFIGURATION PRECEDENCE (highest to lowest):
    1. Command-line flags
    2. Environment variables (TNEF2ICS_PRODUCT_ID, TNEF2ICS_OUTPUT,
       TNEF2ICS_LOG_LEVEL, TNEF2ICS_ZONE_POLICY, TNEF2ICS_CHARSET)
    3. Config file (-config)
    4. Defaults

EXIT STATUS:
    0  invite written
    1  the input could not be read or has no usable start/end date
    2  usage error
`)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	appLog.SetOutput(stderr)

	fs := flag.NewFlagSet("tnef2ics", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printHelp(stderr) }

	configPath := fs.String("config", "", "YAML config file (optional)")
	zonePolicy := fs.String("zone-policy", "", "Zone attached to timestamps: utc or offset")
	productID := fs.String("prodid", "", "PRODID of the generated calendar")
	charsetName := fs.String("charset", "", "Charset of 8-bit text")
	writeConfig := fs.String("write-config", "", "Write the effective configuration to FILE and exit")
	verbose := fs.Bool("v", false, "Enable verbose output (DEBUG logs)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := fs.Args()
	if *writeConfig == "" && (len(rest) < 1 || len(rest) > 2) {
		fmt.Fprintln(stderr, "tnef2ics: expected <input-path> [<output-path>]")
		printHelp(stderr)
		return exitUsage
	}

	ov := config.Overrides{
		ProductID:  *productID,
		ZonePolicy: *zonePolicy,
		Charset:    *charsetName,
	}
	if *verbose {
		ov.LogLevel = "debug"
	}

	cfg, err := config.Load(*configPath, ov)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", *configPath)
		return exitUsage
	}

	level, err := appLog.ParseLevel(cfg.LogLevel)
	if err != nil {
		appLog.Error("invalid log level", err)
		return exitUsage
	}
	appLog.SetLevel(level)

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			appLog.Error("failed to write config", err, "path", *writeConfig)
			return exitError
		}
		appLog.Info("config written", "path", *writeConfig)
		return exitOK
	}

	policy, err := tz.PolicyByName(cfg.ZonePolicy)
	if err != nil {
		appLog.Error("invalid zone policy", err)
		return exitUsage
	}
	charset, err := cfg.Encoding()
	if err != nil {
		appLog.Error("invalid charset", err)
		return exitUsage
	}

	inPath := rest[0]
	outPath := cfg.Output
	if len(rest) == 2 {
		outPath = rest[1]
	}

	appLog.Debug("effective config",
		"input", inPath,
		"output", outPath,
		"zone_policy", policy.Name(),
		"charset", cfg.Charset,
		"product_id", cfg.ProductID,
	)

	err = convert.Run(inPath, outPath, convert.Options{
		ProductID: cfg.ProductID,
		Policy:    policy,
		Charset:   charset,
	})
	if err != nil {
		if errors.Is(err, tz.ErrNoDate) {
			appLog.Error("no date information in invite; nothing written", err, "input", inPath)
		} else {
			appLog.Error("conversion failed", err, "input", inPath, "output", outPath)
		}
		return exitError
	}
	return exitOK
}
