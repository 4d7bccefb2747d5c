package config

import "github.com/miruken-go/lambdakit"

// Feature configures lambdakit from the options under path.
//
//	lambdakit.Setup(config.Feature(koanfp.P(k), "lambdakit"))
//
// Options set by features listed earlier in Setup are overridden
// by the non-zero options read here.
func Feature(provider Provider, path string) func(*lambdakit.Installer) error {
	if provider == nil {
		panic("provider cannot be nil")
	}
	return func(installer *lambdakit.Installer) error {
		options, err := Load(provider, path)
		if err != nil {
			return err
		}
		return installer.MergeOptions(options)
	}
}
