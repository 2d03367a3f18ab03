package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ParallelMandelbrot/coordinator"
	"ParallelMandelbrot/misc"
)

type options struct {
	settingsFile string
	verbose      bool

	heartbeat int
	height    int
	output    string
	passes    int
	savePath  string
	width     int
	workers   int
}

func main() {
	logger := misc.NewLogger("Main", nil)
	misc.CheckError(newRootCommand().Execute(), &logger, misc.Fatal)
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "mandelbrot",
		Short:         "Render a Mandelbrot field in parallel and smooth it with an iterated Gaussian filter",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.settingsFile, "settings", "", "JSON settings file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug messages")
	flags.IntVar(&opts.heartbeat, "heartbeat", 0, "Seconds between task progress reports (0 disables them)")
	flags.IntVar(&opts.height, "height", 1024, "Height of resulting image")
	flags.StringVarP(&opts.output, "output", "o", "mandelbrot-task.ppm", "Name of the PPM file written into the run folder")
	flags.IntVar(&opts.passes, "passes", 20, "Number of convolution passes")
	flags.StringVar(&opts.savePath, "save-path", "", "Folder the run folder is created in (default current directory)")
	flags.IntVar(&opts.width, "width", 1536, "Width of resulting image")
	flags.IntVar(&opts.workers, "workers", 0, "Number of tasks running at once (default GOMAXPROCS)")

	return cmd
}

func run(ctx context.Context, flags *pflag.FlagSet, opts options) error {
	misc.SetVerbose(opts.verbose)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	settings, err := coordinator.NewSettings(opts.settingsFile, func(s *coordinator.Settings) {
		applyFlags(flags, opts, s)
	})
	if err != nil {
		return err
	}

	c, err := coordinator.NewCoordinator(settings)
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.Run(ctx)
	if err != nil {
		return err
	}

	logger := misc.NewLogger("Main", nil)
	logger.Info(result.String())
	return nil
}

// applyFlags lets flags given on the command line win over the settings file.
func applyFlags(flags *pflag.FlagSet, opts options, settings *coordinator.Settings) {
	if flags.Changed("heartbeat") {
		settings.HeartbeatSeconds = opts.heartbeat
	}
	if flags.Changed("height") {
		settings.MandelbrotSettings.Height = opts.height
	}
	if flags.Changed("output") {
		settings.OutputFile = opts.output
	}
	if flags.Changed("passes") {
		settings.ConvolutionSettings.Passes = opts.passes
	}
	if flags.Changed("save-path") {
		settings.SavePath = opts.savePath
	}
	if flags.Changed("width") {
		settings.MandelbrotSettings.Width = opts.width
	}
	if flags.Changed("workers") {
		settings.Workers = opts.workers
	}
}
