package config

import (
	"github.com/spf13/viper"

	"HeadsUpPoker/internal/utils"
)

type Config struct {
	Server struct {
		Port string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	JWT struct {
		Secret     string
		TTLMinutes int
	}
	Game struct {
		// OddChipTo picks the seat position that receives the leftover
		// chip when a tied pot splits unevenly: "big_blind" or "button".
		OddChipTo string
	}
}

var C Config

func Load() {
	viper.SetConfigFile("config/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		utils.Log.Fatal("failed to read config", "err", err)
	}
	if err := viper.Unmarshal(&C); err != nil {
		utils.Log.Fatal("failed to parse config", "err", err)
	}
	if C.JWT.TTLMinutes <= 0 {
		C.JWT.TTLMinutes = 60
	}
}
