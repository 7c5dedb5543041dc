package client

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

const profileSectionPrefix = "profile "

// ProfileNotConfiguredError is returned when a profile is missing from the
// shared config and credentials files.
type ProfileNotConfiguredError struct {
	Profile    string
	Configured []string
}

func (e *ProfileNotConfiguredError) Error() string {
	return fmt.Sprintf("the provided profile %q is not configured. The configured profiles are: %s",
		e.Profile, strings.Join(e.Configured, ", "))
}

// SharedFiles returns the shared config and credentials file paths, honoring
// AWS_CONFIG_FILE and AWS_SHARED_CREDENTIALS_FILE.
func SharedFiles() (configFile, credentialsFile string) {
	configFile = os.Getenv("AWS_CONFIG_FILE")
	if configFile == "" {
		configFile = config.DefaultSharedConfigFilename()
	}
	credentialsFile = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = config.DefaultSharedCredentialsFilename()
	}
	return configFile, credentialsFile
}

// ConfiguredProfiles lists, sorted and deduplicated, the profiles defined in
// the shared config and credentials files. Missing files are skipped.
func ConfiguredProfiles() ([]string, error) {
	return profilesFrom(SharedFiles())
}

// CheckProfile fails with *ProfileNotConfiguredError unless profile is configured.
func CheckProfile(profile string) error {
	profiles, err := ConfiguredProfiles()
	if err != nil {
		return err
	}
	if slices.Contains(profiles, profile) {
		return nil
	}
	return &ProfileNotConfiguredError{Profile: profile, Configured: profiles}
}

func profilesFrom(configFile, credentialsFile string) ([]string, error) {
	var profiles []string

	cfg, err := ini.LooseLoad(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", configFile)
	}
	for _, name := range cfg.SectionStrings() {
		switch {
		case name == "default":
			profiles = append(profiles, name)
		case strings.HasPrefix(name, profileSectionPrefix):
			profiles = append(profiles, strings.TrimSpace(strings.TrimPrefix(name, profileSectionPrefix)))
		}
	}

	creds, err := ini.LooseLoad(credentialsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", credentialsFile)
	}
	for _, name := range creds.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		profiles = append(profiles, name)
	}

	slices.Sort(profiles)
	return slices.Compact(profiles), nil
}
