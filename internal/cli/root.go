package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dicklesworthstone/srvmon/internal/config"
)

// NewRootCommand builds the srvmon command with its flags bound into a
// fresh viper instance.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *viper.Viper) {
	v := config.NewViper()
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "srvmon",
		Short: "Live terminal dashboard of local system resources",
		Long: `srvmon samples CPU, GPU, memory, storage, network and logged-in users
once per interval and redraws them as a four-column table.

Every flag can also be set through SRVMON_<FLAG> environment variables
(dashes become underscores) or a .env file in the working directory.

Examples:
  srvmon
  srvmon --interval 2 --gpu=false
  srvmon --once --mode plain`,
		Version:      versionString(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, v)
		},
	}
	cmd.SetVersionTemplate("srvmon {{.Version}}\n")

	f := cmd.Flags()
	f.String(config.KeyInterval, d.Interval.String(), "refresh interval (duration or seconds)")
	f.Bool(config.KeyGPU, d.GPU, "query NVIDIA GPUs via nvidia-smi")
	f.String(config.KeyPlatform, d.Platform, "host class: auto|desktop|embedded|windows")
	f.String(config.KeyMode, d.Mode, "renderer: auto|tui|plain")
	f.Bool(config.KeyOnce, d.Once, "print a single frame and exit")
	f.Bool(config.KeyNoColor, d.NoColor, "disable colour output")
	f.String(config.KeyCommandTimeout, d.CommandTimeout.String(), "timeout for external commands")
	f.String(config.KeyCPUWindow, d.CPUWindow.String(), "per-core CPU measurement window")
	f.String(config.KeyLogFile, d.LogFile, "append logs to this file")
	f.String(config.KeyLogLevel, d.LogLevel, "log level: debug|info|warn|error")

	// Only fails on a nil flag set.
	_ = v.BindPFlags(f)
	return cmd, v
}

// loadConfig resolves the configuration after flags have been parsed.
func loadConfig(v *viper.Viper) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	return config.Load(v)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
