// Package config manages user-level settings stored at
// ~/.create-canton-app/config.yaml. Values can be overridden with CANTON_*
// environment variables, e.g. CANTON_SDK_VERSION.
package config
