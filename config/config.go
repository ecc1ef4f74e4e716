// Package config loads the YAML settings shared by the CLI and the server.
package config

import (
	"os"
	"strconv"

	"github.com/jbeshir/expertise-predictor/charts"
	"github.com/jbeshir/expertise-predictor/classifier"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "expertise.yaml"

type Evaluation struct {
	WindowSizes []int   `yaml:"window_sizes"`
	MinSupport  float64 `yaml:"min_support"`
}

type Server struct {
	Port         string  `yaml:"port"`
	ExposeErrors bool    `yaml:"expose_errors"`
	CacheSize    int     `yaml:"cache_size"`
	ChartRate    float64 `yaml:"chart_rate"`
	ChartBurst   int     `yaml:"chart_burst"`
}

type Config struct {
	DatasetPath string `yaml:"dataset_path"`
	ModelPath   string `yaml:"model_path"`
	StorageRoot string `yaml:"storage_root"`

	SVM        classifier.SVMParams `yaml:"svm"`
	Evaluation Evaluation           `yaml:"evaluation"`
	Chart      charts.Size          `yaml:"chart"`
	Server     Server               `yaml:"server"`
}

func Default() *Config {
	return &Config{
		DatasetPath: "dataset.csv",
		ModelPath:   "model.bin",
		StorageRoot: ".",
		SVM:         classifier.DefaultSVMParams(),
		Evaluation: Evaluation{
			WindowSizes: []int{5, 10, 20},
			MinSupport:  0.5,
		},
		Chart: charts.DefaultSize(),
		Server: Server{
			Port:       "8080",
			CacheSize:  128,
			ChartRate:  2,
			ChartBurst: 4,
		},
	}
}

// Load reads path over the defaults. An empty path falls back to
// EXPERTISE_CONFIG and then DefaultPath, and a missing fallback file is not an
// error.
func Load(fs afero.Fs, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("EXPERTISE_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	content, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, errors.Wrapf(err, "couldn't parse config %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.Wrapf(err, "couldn't read config %s", path)
	}

	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return nil, errors.Errorf("PORT must be numeric, was %q", port)
		}
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Evaluation.WindowSizes) == 0 {
		return errors.New("evaluation.window_sizes must not be empty")
	}
	for _, ws := range c.Evaluation.WindowSizes {
		if ws < 1 {
			return errors.Errorf("evaluation.window_sizes must be positive, got %d", ws)
		}
	}
	if c.Evaluation.MinSupport < 0 || c.Evaluation.MinSupport > 1 {
		return errors.Errorf("evaluation.min_support must be within [0, 1], got %g", c.Evaluation.MinSupport)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return errors.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.Server.CacheSize <= 0 {
		return errors.Errorf("server.cache_size must be positive, got %d", c.Server.CacheSize)
	}
	if c.Server.ChartRate <= 0 || c.Server.ChartBurst <= 0 {
		return errors.New("server.chart_rate and server.chart_burst must be positive")
	}
	if _, err := classifier.NewSVM(c.SVM); err != nil {
		return errors.Wrap(err, "invalid svm settings")
	}
	return nil
}
