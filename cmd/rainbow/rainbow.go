package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abworrall/rainbow-hdr/pkg/balance"
	"github.com/abworrall/rainbow-hdr/pkg/prism"
	"github.com/abworrall/rainbow-hdr/pkg/spectrum"
)

// options are the values of the command line flags. Only the flags that
// were actually set get copied over the config file (or the defaults).
type options struct {
	configFile string
	verbose    bool
	flags      prism.Config
}

func newRootCmd() (*cobra.Command, *options) {
	o := &options{flags: prism.NewConfig()}

	cmd := &cobra.Command{
		Use:   "rainbow [-d L...] [L...]",
		Short: "Fuse a directory of grayscale photos into a rainbow",
		Long: `rainbow loads every photo in the source directory (in filename order),
tints each one with its own wavelength of visible light, from violet to red,
and fuses the tinted layers into a single image.

The dynamic range multiplier L controls how strongly the brightest layer at
each pixel wins out. Give more than one to get one output per value:

  rainbow -d 1 2 4`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.buildConfig(cmd, args)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Verbosity > 0)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return run(cfg, logger.Sugar())
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.configFile, "config", "", "YAML config file; flags override its values")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	f.Float64SliceVarP(&o.flags.Dynamic, "dynamic", "d", nil, "dynamic range multiplier(s) L; trailing numbers are added too")
	f.StringVarP(&o.flags.Extension, "extension", "e", o.flags.Extension, "only load files with this (case-sensitive) extension")
	f.StringVar(&o.flags.SourceDir, "src", o.flags.SourceDir, "directory of input photos")
	f.StringVar(&o.flags.TintedDir, "tinted", o.flags.TintedDir, "directory for the tinted layers")
	f.StringVar(&o.flags.OutputDir, "out-dir", o.flags.OutputDir, "directory for the fused outputs")
	f.StringVar(&o.flags.Spectrum, "spectrum", o.flags.Spectrum, "wavelength to color mapping: "+spectrum.ListMappers())
	f.StringVar(&o.flags.Balancer, "balancer", o.flags.Balancer, "color balance for the output: "+balance.ListBalancers())
	f.IntVar(&o.flags.Width, "width", 0, "resize inputs to this width (0 keeps native size)")
	f.BoolVar(&o.flags.AutoOrient, "autoorient", false, "rotate inputs per their EXIF orientation")
	f.BoolVar(&o.flags.WriteHDR, "hdr", false, "also write each fusion as a Radiance .hdr")
	f.StringVar(&o.flags.LegendFilename, "legend", "", "write a PNG legend of the wavelengths here")
	f.BoolVar(&o.flags.DumpGrids, "dumpgrids", false, "write a debug PNG of each fused plane")

	return cmd, o
}

// buildConfig starts from the config file (or the defaults), applies
// any flags that were set, and appends the positional args to the
// list of dynamic ranges.
func (o *options) buildConfig(cmd *cobra.Command, args []string) (prism.Config, error) {
	cfg := prism.NewConfig()
	if o.configFile != "" {
		var err error
		if cfg, err = prism.LoadConfig(o.configFile); err != nil {
			return cfg, err
		}
	}

	overrides := map[string]func(){
		"dynamic":    func() { cfg.Dynamic = append([]float64{}, o.flags.Dynamic...) },
		"extension":  func() { cfg.Extension = o.flags.Extension },
		"src":        func() { cfg.SourceDir = o.flags.SourceDir },
		"tinted":     func() { cfg.TintedDir = o.flags.TintedDir },
		"out-dir":    func() { cfg.OutputDir = o.flags.OutputDir },
		"spectrum":   func() { cfg.Spectrum = o.flags.Spectrum },
		"balancer":   func() { cfg.Balancer = o.flags.Balancer },
		"width":      func() { cfg.Width = o.flags.Width },
		"autoorient": func() { cfg.AutoOrient = o.flags.AutoOrient },
		"hdr":        func() { cfg.WriteHDR = o.flags.WriteHDR },
		"legend":     func() { cfg.LegendFilename = o.flags.LegendFilename },
		"dumpgrids":  func() { cfg.DumpGrids = o.flags.DumpGrids },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	for _, arg := range args {
		L, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return cfg, fmt.Errorf("dynamic range '%s' is not a number", arg)
		}
		cfg.Dynamic = append(cfg.Dynamic, L)
	}

	if o.verbose {
		cfg.Verbosity = 1
	}

	return cfg, cfg.Validate()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func run(cfg prism.Config, log *zap.SugaredLogger) error {
	p := prism.New(cfg)
	p.Log = log

	p.Log.Infof("rainbow starting")
	if cfg.Verbosity > 0 {
		p.Log.Debugf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	written, err := p.Run()
	if err != nil {
		return err
	}

	p.Log.Infof("Done, wrote %d output images", len(written))
	return nil
}

func main() {
	cmd, _ := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
