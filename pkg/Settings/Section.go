package Settings

type Config struct {
	APP    APP    `toml:"APP"`
	Logger Logger `toml:"Logger"`
}

func (c *Config) fixme() {
	if c.APP.Codec == "" {
		c.APP.Codec = "h264"
	}
	if c.APP.ConnectTimeout == 0 {
		c.APP.ConnectTimeout = 10
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
}

type APP struct {
	Codec          string `toml:"Codec"`          // default codec tag announced during handshake
	ConnectTimeout int    `toml:"ConnectTimeout"` // seconds
	ReadTimeout    int    `toml:"ReadTimeout"`    // seconds, 0 means no deadline
	WriteTimeout   int    `toml:"WriteTimeout"`   // seconds, 0 means no deadline
}

type Logger struct {
	Level       string `toml:"Level"`
	MaxSize     int    `toml:"MaxSize"`
	MaxBackups  int    `toml:"MaxBackups"`
	MaxAge      int    `toml:"MaxAge"`
	Development bool   `toml:"Development"`
}
