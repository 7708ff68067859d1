package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/app"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/probe"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/stderr"
)

func runTUI(cmd *cobra.Command, opts *rootOptions, folder string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if err := checkFolder(folder); err != nil {
		return err
	}

	log, logFile, err := logging.Open(cfg.Log.File, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.Info("starting", "folder", folder, "config", opts.configPath)

	// Must start before the audio backend writes anything
	capture := stderr.New()
	if err := capture.Start(); err != nil {
		log.Warn("stderr capture unavailable", "err", err)
	}
	defer capture.Stop()

	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateLoad, err))
	}
	defer stateMgr.Close()

	p := player.New(player.Options{
		Prober:    probe.New(probe.Options{PacketCeiling: cfg.Probe.PacketCeiling, Logger: log}),
		Logger:    log,
		Volume:    1,
		MaxVolume: cfg.Volume.Max,
	})
	defer p.Stop()

	m, err := app.New(app.Options{
		Config: cfg,
		Player: p,
		State:  stateMgr,
		Folder: folder,
		Stderr: capture.Lines(),
		Logger: log,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := prog.Run(); err != nil {
		log.Error("program stopped", "err", err)
		return fmt.Errorf("run: %w", err)
	}
	log.Info("exiting")
	return nil
}

// checkFolder rejects a folder argument that is not a directory. Empty is
// accepted.
func checkFolder(folder string) error {
	if folder == "" {
		return nil
	}
	info, err := os.Stat(folder)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpOpenFolder, folder, err))
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", folder)
	}
	return nil
}
