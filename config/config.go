package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/66f94eae/bark-go/util"
)

type (
	// Config is the struct that holds all the configuration for the sender.
	Config struct {
		Apns Apns
	}

	// Apns holds the APNs credential and connection settings.
	Apns struct {
		AuthKeyPath       string
		KeyID             string
		TeamID            string
		Topic             string
		Devices           string
		ConcurrentWorkers int
	}
)

// NewConfigAndViper returns a new Config object and the corresponding viper instance.
func NewConfigAndViper(configFile string) (*Config, *viper.Viper, error) {
	v, err := util.NewViperWithConfigFile(configFile)
	if err != nil {
		return nil, nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config, decodeHookFunc()); err != nil {
		return nil, nil, fmt.Errorf("error unmarshalling config: %s", err)
	}

	return config, v, nil
}

// GetDevicesArray splits the configured device list on commas.
func (c *Config) GetDevicesArray() []string {
	arr := strings.Split(c.Apns.Devices, ",")
	res := make([]string, 0, len(arr))
	for _, d := range arr {
		if d = strings.TrimSpace(d); d != "" {
			res = append(res, d)
		}
	}

	return res
}

func decodeHookFunc() viper.DecoderConfigOption {
	hooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)
	return viper.DecodeHook(hooks)
}
