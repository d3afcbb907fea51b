package Settings

import "github.com/BurntSushi/toml"

var config Config

func GetConfig() Config {
	return config
}

// ReadConfig loads the optional toml config file. An empty path runs on
// pure defaults; command-line flags override either way.
func ReadConfig(configPath string) error {
	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, &config); err != nil {
			return err
		}
	}
	config.fixme()
	return nil
}
