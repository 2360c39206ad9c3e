package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/srvmon/internal/config"
	"github.com/Dicklesworthstone/srvmon/internal/logging"
	"github.com/Dicklesworthstone/srvmon/internal/platform"
	"github.com/Dicklesworthstone/srvmon/internal/refresh"
	"github.com/Dicklesworthstone/srvmon/internal/sampler"
	"github.com/Dicklesworthstone/srvmon/internal/ui"
)

func runMonitor(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prof, err := platform.Detect(ctx, platform.SystemProbe(), cfg.PlatformOverride())
	if err != nil {
		log.Error("platform detection failed", "err", err)
		return err
	}
	log.Info("starting",
		"platform", prof.Kind.String(),
		"logical_cores", prof.LogicalCores,
		"interval", cfg.Interval,
		"gpu", cfg.GPU && prof.GPU,
	)

	s := sampler.New(prof, sampler.SystemHost(cfg.CommandTimeout),
		sampler.Options{CPUWindow: cfg.CPUWindow, GPU: cfg.GPU, QueryTimeout: cfg.CommandTimeout}, log)
	loop := refresh.New(s, cfg.Interval, log)

	out := cmd.OutOrStdout()
	tty := isTerminal(out)
	if cfg.NoColor || !tty {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	title := "srvmon · " + prof.Kind.String()

	if resolveMode(cfg, tty) == config.ModeTUI {
		return ui.RunTUI(ctx, loop, title)
	}
	return runPlain(ctx, loop, ui.NewPlainRenderer(out, title, tty), cfg.Once)
}

func runPlain(ctx context.Context, loop *refresh.Loop, p *ui.PlainRenderer, once bool) error {
	defer p.Close()
	var err error
	if once {
		err = loop.Once(ctx, p)
	} else {
		err = loop.Run(ctx, p)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resolveMode picks the renderer. --once always prints plain text.
func resolveMode(cfg config.Config, tty bool) string {
	if cfg.Once {
		return config.ModePlain
	}
	if cfg.Mode == config.ModeAuto {
		if tty {
			return config.ModeTUI
		}
		return config.ModePlain
	}
	return cfg.Mode
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
