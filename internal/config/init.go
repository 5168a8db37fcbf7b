package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// InitConfig loads tool configuration. ENVLOADER_CONFIG_FILE overrides the
// path; otherwise config.yaml next to the executable is used. A missing
// file writes the defaults out once.
func InitConfig() {
	if configFile := os.Getenv("ENVLOADER_CONFIG_FILE"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		if exePath, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(exePath))
		}
	}

	viper.SetDefault("file", ".env")
	// historical read cap, 20 KiB; a guard against loading the wrong file,
	// not a format limit
	viper.SetDefault("read_max_bytes", 20*1024)
	viper.SetDefault("silent", false)

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &configFileNotFoundError) {
			if err = viper.WriteConfigAs("config.yaml"); err != nil {
				log.Printf("failed to write default config: %v", err)
			}
		}
	}
}
