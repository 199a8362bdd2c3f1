package findleads

type Config struct {
	DefaultCount int
	MaxCount     int
}

func LoadConfig() *Config {
	return &Config{
		DefaultCount: 10,
		MaxCount:     25,
	}
}
