package lambdakit

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/imdario/mergo"
	"github.com/miruken-go/lambdakit/internal"
)

type (
	// Options tune the closure facility.
	// Zero fields take the value of DefaultOptions.
	Options struct {
		// Verbosity is the logr level of trace messages.
		Verbosity int `path:"verbosity" validate:"gte=0,lte=10"`

		// FrameInterval is the period of real frame sources.
		FrameInterval time.Duration `path:"frameInterval" validate:"gte=0,lte=1m"`
	}

	// Installer accumulates the settings applied by Setup.
	Installer struct {
		logger  logr.Logger
		options Options
	}

	environment struct {
		logger  logr.Logger
		options Options
	}
)

// DefaultOptions are used for anything not configured.
var DefaultOptions = Options{
	Verbosity:     1,
	FrameInterval: time.Second / 60,
}

var current atomic.Pointer[environment]

func (i *Installer) SetLogger(logger logr.Logger) {
	i.logger = logger
}

func (i *Installer) SetVerbosity(verbosity int) {
	i.options.Verbosity = verbosity
}

// MergeOptions overlays the non-zero fields of options.
func (i *Installer) MergeOptions(options Options) error {
	return mergo.Merge(&i.options, options, mergo.WithOverride)
}

// WithLogger routes lambdakit logging to logger.
func WithLogger(logger logr.Logger) func(*Installer) {
	return func(installer *Installer) {
		installer.SetLogger(logger)
	}
}

// Verbosity sets the level of trace messages.
func Verbosity(verbosity int) func(*Installer) {
	return func(installer *Installer) {
		installer.SetVerbosity(verbosity)
	}
}

// WithOptions applies options, typically loaded from configuration.
func WithOptions(options Options) func(*Installer) error {
	return func(installer *Installer) error {
		return installer.MergeOptions(options)
	}
}

// Setup configures the process wide logger and options.
// Each config is a func(*Installer) or func(*Installer) error.
// Calling Setup again replaces the previous configuration.
func Setup(config ...any) error {
	installer := &Installer{logger: logr.Discard()}
	for _, configure := range config {
		switch c := configure.(type) {
		case nil:
		case func(*Installer):
			c(installer)
		case func(*Installer) error:
			if err := c(installer); err != nil {
				return fmt.Errorf("lambdakit: %w", err)
			}
		default:
			panic(fmt.Sprintf("unrecognized setup config %T", configure))
		}
	}
	options := installer.options
	if err := mergo.Merge(&options, DefaultOptions); err != nil {
		return fmt.Errorf("lambdakit: %w", err)
	}
	if err := internal.ValidateStruct(options); err != nil {
		return fmt.Errorf("lambdakit: %w", err)
	}
	current.Store(&environment{
		logger:  installer.logger.WithName("lambdakit"),
		options: options,
	})
	return nil
}

// CurrentOptions returns the options in effect.
func CurrentOptions() Options {
	if env := current.Load(); env != nil {
		return env.options
	}
	return DefaultOptions
}

// Logger returns the logger configured by Setup.
func Logger() logr.Logger {
	return logger()
}

func logger() logr.Logger {
	if env := current.Load(); env != nil {
		return env.logger
	}
	return logr.Discard()
}

func verbosity() int {
	return CurrentOptions().Verbosity
}

// Trace returns the logger for trace messages at the configured verbosity.
func Trace() logr.Logger {
	return logger().V(verbosity())
}
