// Package cmd holds the kong command implementations.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/open-sd/opensd/errs"
	"github.com/open-sd/opensd/gamepad"
	"github.com/open-sd/opensd/internal/configpaths"
	"github.com/open-sd/opensd/internal/log"
)

// Daemon is the default command: run the driver until interrupted.
type Daemon struct {
	Profile string `help:"Profile file name to load at startup." default:"default.ini" env:"OPENSD_PROFILE"`
}

// Run is called by kong when the daemon command executes.
func (c *Daemon) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Geteuid() == 0 {
		logger.Warn("opensd appears to be running as root; run it as the desktop user instead")
	}

	if err := configpaths.DeployDefaults(); err != nil {
		logger.Warn("failed to deploy default profile", "error", err)
	}

	logger.Info("creating gamepad driver")
	drv, err := gamepad.New(logger)
	if err != nil {
		logger.Error("failed to create gamepad driver", "error", err)
		return err
	}
	drv.SetRawLogger(rawLogger)

	loadProfile := func(name string) error {
		path := configpaths.ProfilePath(name)
		if path == "" {
			return fmt.Errorf("%w: profile %q", errs.ErrFileNotFound, name)
		}
		prof, err := gamepad.LoadProfileFile(path)
		if err != nil {
			return err
		}
		return drv.SetProfile(prof)
	}

	// Profile bindings fire from the poll goroutine, which holds the
	// poll lock SetProfile needs; apply requested swaps asynchronously.
	drv.OnProfileRequest(func(name string) {
		go func() {
			if err := loadProfile(name); err != nil {
				logger.Error("failed to switch profile", "profile", name, "error", err)
			}
		}()
	})

	logger.Info("loading gamepad profile", "profile", c.Profile)
	if err := loadProfile(c.Profile); err != nil {
		logger.Error("failed to load startup profile, using built-in default", "profile", c.Profile, "error", err)
		if err := drv.SetProfile(gamepad.DefaultProfile()); err != nil {
			drv.Stop()
			return err
		}
	}

	logger.Info("starting gamepad driver")
	drv.Start()

	<-ctx.Done()
	logger.Info("shutting down")
	drv.Stop()
	return nil
}
