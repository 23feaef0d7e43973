package genconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/djatlantic/cronset/pkg/config"
	"github.com/djatlantic/cronset/pkg/errors"
	"github.com/djatlantic/cronset/pkg/logging"
	"github.com/djatlantic/cronset/pkg/paths"
	"github.com/djatlantic/cronset/pkg/types"
)

// Options holds options for the gen-config command
type Options struct {
	// Effective renders the fully resolved configuration, with file and
	// environment overrides applied, instead of the annotated defaults.
	Effective bool

	// Write saves the content to the user config directory instead of
	// returning it for stdout.
	Write bool

	// ConfigFiles are the candidate config paths consulted when
	// Effective is set.
	ConfigFiles []string
}

// GenConfig outputs or writes the cronset configuration
func GenConfig(opts Options) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content, err := render(opts)
	if err != nil {
		return nil, err
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	targetPath := paths.New("").ConfigFiles()[0]
	logger.Info().Str("path", targetPath).Msg("Writing config file")

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to create directory %s", filepath.Dir(targetPath))
	}

	if _, err := os.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := os.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write config to %s", targetPath)
	}

	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}

// render picks between the annotated defaults file and a TOML dump of
// the resolved configuration.
func render(opts Options) (string, error) {
	if !opts.Effective {
		return config.DefaultContent(), nil
	}

	cfg, err := config.Load(opts.ConfigFiles)
	if err != nil {
		return "", err
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render effective config")
	}
	return string(out), nil
}
