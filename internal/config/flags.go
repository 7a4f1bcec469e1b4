package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the resolution flags on fs and binds them to opts.
//
// Flags:
//
//	-c/--config       configuration file path, repeatable (yaml, yml, toml, json)
//	--env-prefix      environment variable prefix (default "APP")
//	--strict          fail on malformed optional instance values
//	--max-instances   safety bound of the instance scan per family
//	--no-env          ignore environment variables entirely
func BindFlags(fs *pflag.FlagSet, opts *Options) {
	fs.StringArrayVarP(&opts.Files, "config", "c", nil, "Config file path (yaml, yml, toml or json); repeatable, later files win")
	fs.StringVar(&opts.EnvPrefix, "env-prefix", DefaultEnvPrefix, "Environment variable prefix")
	fs.BoolVar(&opts.Strict, "strict", false, "Fail on malformed optional instance values instead of using defaults")
	fs.IntVar(&opts.MaxInstances, "max-instances", DefaultMaxInstances, "Maximum number of instances scanned per resource family")
	fs.BoolVar(&opts.DisableEnv, "no-env", false, "Ignore environment variables")
}
