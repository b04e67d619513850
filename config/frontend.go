package config

import "github.com/spf13/viper"

// Frontend frontend config struct
type Frontend struct {
	Dist   string // built client assets, served in production
	Origin string // browser origin allowed to send credentialed requests
}

// getFrontendConfig returns the frontend config.
func getFrontendConfig(v *viper.Viper) *Frontend {
	return &Frontend{
		Dist:   v.GetString("frontend.dist"),
		Origin: v.GetString("frontend.origin"),
	}
}
