package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acronis/go-scoop/internal/config"
)

const (
	configFlag      = "config"
	githubTokenFlag = "github-token"
	bucketFlag      = "bucket"
)

func AddConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(configFlag, "c", "", "path to a YAML configuration file")
	cmd.PersistentFlags().String(githubTokenFlag, "", "GitHub token sent with raw content requests")
}

// LoadConfig reads the configuration file and applies flag overrides.
func LoadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return config.Config{}, fmt.Errorf("get config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	token, err := cmd.Flags().GetString(githubTokenFlag)
	if err != nil {
		return config.Config{}, fmt.Errorf("get github-token flag: %w", err)
	}
	if token != "" {
		cfg.GitHub.Token = token
	}
	return cfg, nil
}

func AddBucketFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(bucketFlag, "b", "", "bucket short name or GitHub repository URL (default \"main\")")
}

func GetBucket(cmd *cobra.Command) (string, error) {
	bucket, err := cmd.Flags().GetString(bucketFlag)
	if err != nil {
		return "", fmt.Errorf("get bucket flag: %w", err)
	}
	return bucket, nil
}
