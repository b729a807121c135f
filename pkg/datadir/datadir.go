// Package datadir locates the stabping data directory and names the files
// inside it. The search order mirrors stabping's own config lookup so the
// exporter finds data wherever the daemon put it.
package datadir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DirName is the data directory stabping writes next to its config.
	DirName = "stabping_data"

	// DataFileName is the flat binary record log inside the data directory.
	DataFileName = "tcpping.data.dat"

	// IndexFileName is the address index inside the data directory.
	IndexFileName = "tcpping.index.json"

	envPrefix = "PINGDUMP"
)

// Find locates the data directory. Resolution order:
//
//  1. PINGDUMP_DATA_DIR environment variable
//  2. a data_dir key in the config file, when configPath is given
//  3. stabping_data next to the config file, when configPath is given
//  4. ./stabping_data, then ~/.config/stabping_data, then /etc/stabping_data
//
// A directory selected by 1–3 that does not exist is an error; the
// fallback candidates in 4 are probed silently.
func Find(configPath string) (string, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	_ = v.BindEnv("data_dir")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config %s: %w", configPath, err)
		}
	}

	if dir := v.GetString("data_dir"); dir != "" {
		return Verify(dir)
	}
	if configPath != "" {
		return Verify(filepath.Join(filepath.Dir(configPath), DirName))
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DirName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", DirName))
	}
	candidates = append(candidates, filepath.Join("/etc", DirName))

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", errors.New("could not find the stabping_data directory; use --config to point at stabping_config.json")
}

// Verify checks that dir exists and is a directory, returning it
// unchanged. Used for explicitly named directories, which are an error
// when absent.
func Verify(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("data directory not found: %s", dir)
	}
	return dir, nil
}

// DataPath returns the record log path inside dir.
func DataPath(dir string) string {
	return filepath.Join(dir, DataFileName)
}

// IndexPath returns the address index path inside dir.
func IndexPath(dir string) string {
	return filepath.Join(dir, IndexFileName)
}
