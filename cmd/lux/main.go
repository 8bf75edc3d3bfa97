package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/lux-bot/lux/internal/config"
	"github.com/lux-bot/lux/internal/logging"
	"github.com/lux-bot/lux/internal/startup"
)

// multiLetterAliases maps short forms kingpin cannot express to their long flags.
var multiLetterAliases = map[string]string{
	"-CF": "--cog-config",
}

func main() {
	cli, opts := newCLI()
	kingpin.MustParse(cli.Parse(normalizeArgs(os.Args[1:])))
	opts.ConfigPath = absPath(opts.ConfigPath)
	opts.CogConfigPath = absPath(opts.CogConfigPath)
	opts.EnvPath = absPath(opts.EnvPath)

	logger, level, err := logging.New()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := startup.NewEntry(logger, level).Run(*opts); err != nil {
		logger.Fatal("lux stopped with error", zap.Error(err))
	}
}

func newCLI() (*kingpin.Application, *startup.Options) {
	opts := &startup.Options{}

	app := kingpin.New("lux", "Lux bot")
	app.Flag("production", "Run in production mode").Short('P').BoolVar(&opts.Production)
	app.Flag("config", "Path to the YAML config file (alias -C)").
		Short('C').Default(config.DefaultConfigPath()).StringVar(&opts.ConfigPath)
	app.Flag("cog-config", "Path to the YAML cog config file (alias -CF)").
		Default(config.DefaultCogConfigPath()).StringVar(&opts.CogConfigPath)
	app.Flag("env", "Path to the .env file (alias -E)").
		Short('E').Default(".env").StringVar(&opts.EnvPath)
	app.Flag("disable-debug-extra-init", "Skip the extra initialization done in debug mode").
		BoolVar(&opts.DisableDebugExtraInit)

	return app, opts
}

// normalizeArgs rewrites multi-letter short aliases such as -CF into their
// long form. Everything after "--" is left untouched.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := multiLetterAliases[name]; ok {
			if hasValue {
				arg = long + "=" + value
			} else {
				arg = long
			}
		}
		out = append(out, arg)
	}
	return out
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
