package config

import (
	"os"
	"strings"

	"emperror.dev/errors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// TokenEnvVar is read when no token is passed explicitly
const TokenEnvVar = "GITHUB_TOKEN"

// ErrMissingToken is returned when no GitHub token can be found
var ErrMissingToken = errors.Sentinel("GitHub token not found: set " + TokenEnvVar + ", pass --token, or add it to a .env file")

// ResolveToken finds the API token. An explicit token wins; otherwise the
// environment is consulted after loading envFile (or ./.env when envFile is
// empty). Variables already set in the environment are not overridden.
func ResolveToken(explicit, envFile string) (string, error) {
	if t := strings.TrimSpace(explicit); t != "" {
		return t, nil
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			logrus.WithField("file", envFile).WithError(err).Warn("failed to load env file")
		}
	} else {
		_ = godotenv.Load()
	}

	if t := strings.TrimSpace(os.Getenv(TokenEnvVar)); t != "" {
		return t, nil
	}
	return "", ErrMissingToken
}
