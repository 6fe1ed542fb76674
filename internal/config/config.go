package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultAPIURL is the GitHub REST API base used when GITHUB_API_URL is unset.
const DefaultAPIURL = "https://api.github.com/"

// Config holds application configuration loaded from environment variables.
type Config struct {
	APIURL       string
	GitHubToken  string
	SlackMode    bool
	DebugMode    bool
	StoreBackend string
	StorePath    string
	S3Bucket     string
	S3Prefix     string
	AWSRegion    string
	ListenAddr   string
}

// FromEnvironment creates a Config from environment variables.
func FromEnvironment() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("GITHUB_API_URL", DefaultAPIURL)
	v.SetDefault("STORE_BACKEND", "file")
	v.SetDefault("LISTEN_ADDR", ":8080")

	return Config{
		APIURL:       v.GetString("GITHUB_API_URL"),
		GitHubToken:  v.GetString("GITHUB_TOKEN"),
		SlackMode:    enabled(v.GetString("SLACK_MODE")),
		DebugMode:    enabled(v.GetString("DEBUG")),
		StoreBackend: strings.ToLower(v.GetString("STORE_BACKEND")),
		StorePath:    v.GetString("STORE_PATH"),
		S3Bucket:     v.GetString("S3_BUCKET_NAME"),
		S3Prefix:     v.GetString("S3_OBJECT_PREFIX"),
		AWSRegion:    v.GetString("AWS_REGION"),
		ListenAddr:   v.GetString("LISTEN_ADDR"),
	}
}

// enabled treats any value other than "", "0" and "false" as true.
func enabled(val string) bool {
	return val != "" && val != "0" && strings.ToLower(val) != "false"
}
