package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eleviewr/eleviewr/pkg/eleviewr"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/catalog"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/platform/hyprpaper"
)

type rootFlags struct {
	configPath       string
	logLevel         string
	logFile          string
	language         string
	watch            bool
	wallpaperCommand string
	width            int32
	height           int32
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "eleviewr [path]",
		Short: "A minimal keyboard driven image viewer",
		Long: `EleViewr shows an image, or the images of a directory, one at a time.
Navigate with the arrow keys, set the current image as the Hyprland wallpaper
or delete it from disk.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Before any config loading logs.
			if flags.logFile != "" {
				eleviewr.SetLogFilename(flags.logFile)
			}
			if flags.logLevel != "" {
				eleviewr.SetRawLogLevel(flags.logLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/eleviewr/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "also write logs to this file under the user cache directory")
	rootCmd.Flags().StringVar(&flags.language, "lang", "", "interface language, e.g. en or es (overrides the config)")
	rootCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rescan the directory when images are added or removed")
	rootCmd.Flags().StringVar(&flags.wallpaperCommand, "wallpaper-command", "", "hyprctl binary used to set the wallpaper (overrides the config)")
	rootCmd.Flags().Int32Var(&flags.width, "width", 0, "maximum initial window width")
	rootCmd.Flags().Int32Var(&flags.height, "height", 0, "maximum initial window height")

	rootCmd.AddCommand(newKeysCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))

	return rootCmd
}

func loadConfig(flags *rootFlags) (*keymap.Config, error) {
	path := flags.configPath
	if path == "" {
		var err error
		path, err = keymap.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return keymap.Load(path)
}

// resolvePath turns the optional positional argument into an existing path.
func resolvePath(args []string) (string, error) {
	if len(args) == 0 {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return dir, nil
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("%w: %s", catalog.ErrPathNotFound, args[0])
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", catalog.ErrPathNotFound, args[0])
	}
	return path, nil
}

func runViewer(cmd *cobra.Command, flags *rootFlags, args []string) error {
	path, err := resolvePath(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	language := cfg.Viewer.Language
	if flags.language != "" {
		language = flags.language
	}
	command := cfg.Wallpaper.Command
	if flags.wallpaperCommand != "" {
		command = flags.wallpaperCommand
	}
	watch := cfg.Viewer.Watch
	if cmd.Flags().Changed("watch") {
		watch = flags.watch
	}

	if err := eleviewr.Init(eleviewr.Options{
		WindowTitle: "EleViewr",
		MaxWidth:    flags.width,
		MaxHeight:   flags.height,
		LogFilename: flags.logFile,
		Language:    language,
	}); err != nil {
		return fmt.Errorf("initializing display: %w", err)
	}
	defer eleviewr.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return eleviewr.Run(ctx, eleviewr.RunOptions{
		Path:      path,
		Bindings:  cfg.Bindings(),
		Wallpaper: hyprpaper.New(hyprpaper.WithCommand(command)),
		Watch:     watch,
	})
}
