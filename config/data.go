package config

import "github.com/spf13/viper"

// Data represents the data configuration.
type Data struct {
	MongoDB *MongoDB
}

// MongoDB represents the document store connection.
type MongoDB struct {
	URI      string
	Database string
}

// getDataConfig returns data config.
func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		MongoDB: &MongoDB{
			URI:      v.GetString("data.mongodb.uri"),
			Database: v.GetString("data.mongodb.database"),
		},
	}
}
