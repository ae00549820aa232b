package cli

import (
	"flag"
	"strings"
)

const versionString = "1.0.0"
const defaultConfigPath = "./littlelemon.toml"

type cliOptions struct {
	configPath string
	envPath    string
	ui         bool
	serve      bool
	list       bool
	category   string
	query      string
	noSeed     bool
	verbose    bool
	version    bool
	args       []string
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("littlelemon", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&opts.envPath, "env", ".env", "Path to a .env file with LITTLELEMON_* overrides")
	fs.BoolVar(&opts.ui, "ui", false, "Run the terminal UI")
	fs.BoolVar(&opts.serve, "serve", false, "Serve the menu API")
	fs.BoolVar(&opts.list, "list", false, "Print the menu and exit")
	fs.StringVar(&opts.category, "category", "", "Comma-separated categories for --list")
	fs.StringVar(&opts.query, "q", "", "Name search for --list")
	fs.BoolVar(&opts.noSeed, "no-seed", false, "Skip seeding an empty menu")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}

func splitCategories(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
