package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	SalesFolderPath string  `json:"salesFolderPath"`
	VatRate         float64 `json:"vatRate"`
	PortalUserID    string  `json:"portalUserID"`
	PortalPassword  string  `json:"portalPassword"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./balmoral_config.json"

// Argentine IVA applied to recipe cost when computing margins.
const defaultVatRate = 0.21

func LoadConfig() (Config, error) {
	mu.RLock()
	defer mu.RUnlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Config{
				VatRate: defaultVatRate,
			}
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = tempCfg

	if cfg.VatRate == 0 {
		cfg.VatRate = defaultVatRate
	}

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if newCfg.VatRate == 0 {
		newCfg.VatRate = defaultVatRate
	}

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
