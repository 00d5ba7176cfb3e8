// cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piclens/piclens/internal/access"
	"github.com/piclens/piclens/internal/config"
	"github.com/piclens/piclens/internal/picker"
	"github.com/piclens/piclens/internal/source"
	"github.com/piclens/piclens/internal/source/httpapi"
	"github.com/piclens/piclens/internal/source/native"
	"github.com/piclens/piclens/tui"
)

var (
	cfgFile  string
	flagDir  string
	flagHTTP string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "piclens",
	Short: "Browse the images in a local directory",
	Long: `
          ▞▀▖▗     ▜
          ▙▄▘▄ ▞▀▖ ▐ ▞▀▖▛▀▖▞▀▘
          ▌  ▐ ▌ ▖ ▐ ▛▀ ▌ ▌▝▀▖
          ▘  ▀▘▝▀  ▝▘▝▀▘▘ ▘▀▀   piclens

  Pick a directory, piclens recursively finds every image in
  it (jpg, jpeg, png, gif, webp) and shows a sortable listing
  with size, timestamp, format and pixel dimensions.`,
	RunE: runBrowse,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/piclens/config.yaml)")
	rootCmd.Flags().StringVarP(&flagDir, "dir", "d", "", "browse this directory without the interactive chooser")
	rootCmd.Flags().StringVar(&flagHTTP, "http", "", "browse through a dev image server at this base URL instead of the filesystem")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	var (
		src     source.Source
		chooser picker.Chooser
	)

	switch {
	case flagHTTP != "":
		src = httpapi.New(flagHTTP)
		chooser = picker.FixedChooser{Dir: flagHTTP}
	case flagDir != "":
		src = native.New()
		chooser = picker.FixedChooser{Dir: config.ExpandHome(flagDir)}
	default:
		src = native.New()
		chooser = picker.NewTerminalChooser(cfg.StartDir)
	}

	session := picker.NewSession(src, chooser)
	defer session.Close()

	for {
		grant, err := session.SelectDirectory(context.Background())
		if err != nil {
			return describeSelectError(err)
		}
		if grant == nil {
			// User backed out of the chooser; nothing to browse.
			return nil
		}

		repick, err := tui.Run(cfg, session, grant)
		if err != nil {
			return err
		}
		if !repick {
			return nil
		}
		// Interactive re-pick only makes sense with the terminal chooser;
		// a fixed grant would loop on the same directory forever.
		if _, fixed := chooser.(picker.FixedChooser); fixed {
			return nil
		}
	}
}

func describeSelectError(err error) error {
	var ae *access.Error
	if !errors.As(err, &ae) {
		return err
	}

	fmt.Fprintln(os.Stderr, ae.Message)
	if ae.Kind == access.KindUnsupported {
		fmt.Fprintln(os.Stderr, "Hint: run in an interactive terminal, or pass --dir to browse a directory directly.")
	} else if ae.Retryable() {
		fmt.Fprintln(os.Stderr, "Try selecting the directory again.")
	}
	return err
}
