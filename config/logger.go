package config

import (
	"github.com/spf13/viper"

	"github.com/notevault/notevault/logging/logger"
)

// Logger logger config struct
type Logger = logger.Config

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      v.GetInt("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}
