package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/hostplatform"
	"github.com/wippyai/hostplatform/files"
)

var (
	userDir    string
	appName    string
	headless   bool
	assetsPath string
	devLogging bool
	frameMsec  uint32
)

var rootCmd = &cobra.Command{
	Use:   "hostdemo",
	Short: "Demonstration host for the platform layer",
	Long: `hostdemo runs a minimal host main loop on top of the platform layer.
It polls the console once per frame and executes each completed line.

Commands typed at the console:
  write <path> <text>   write text to a file
  read <path>           print a file
  exists <path>         probe a path
  mkdir <path>          create a directory
  time                  print monotonic time
  cpus                  print the processor count
  sleep <ms>            sleep
  error <message>       raise a fatal error (exit 1)
  quit                  quit (exit 0)

Examples:
  # Raw filesystem build
  hostdemo --userdir /tmp/host

  # Asset build reading from a zip archive
  go build -tags assets ./cmd/hostdemo
  hostdemo --assets pak0.zip --headless`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHost,
}

func init() {
	rootCmd.Flags().StringVar(&userDir, "userdir", "", "user data directory (default: OS config dir)")
	rootCmd.Flags().StringVar(&appName, "app", hostplatform.DefaultAppName, "application name for the user data directory")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "suppress the fatal error dialog (default: detect)")
	rootCmd.Flags().StringVar(&assetsPath, "assets", "", "zip archive served by the asset build")
	rootCmd.Flags().BoolVar(&devLogging, "dev", false, "human-readable development logging")
	rootCmd.Flags().Uint32Var(&frameMsec, "frame", 10, "milliseconds slept per frame")
}

func newLogger() (*zap.Logger, error) {
	if devLogging {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runHost(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	h := &host{out: cmd.OutOrStdout()}
	p := hostplatform.New(h.shutdown).
		WithLogger(logger).
		WithUserDir(userDir).
		WithAppName(appName)
	if cmd.Flags().Changed("headless") {
		p.WithHeadless(headless)
	}
	if assetsPath != "" {
		archive, err := files.OpenZipArchive(assetsPath)
		if err != nil {
			return fmt.Errorf("open assets: %w", err)
		}
		p.WithArchive(archive)
	}
	h.p = p

	if err := p.Init(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	for {
		select {
		case sig := <-sigChan:
			logger.Info("signal received", zap.Stringer("signal", sig))
			p.Quit()
			return nil
		default:
		}

		if line, ok := p.PollConsole(); ok {
			h.exec(line)
		}
		h.frames++
		p.Sleep(frameMsec)
	}
}
