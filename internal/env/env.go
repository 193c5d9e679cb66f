// Package env turns an environment tag into the host, user and database a
// client should connect with.
package env

import (
	"os"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/eduardofuncao/pgx/internal/config"
)

// ErrUnsetVariable is returned when a preset names a variable that is not set.
var ErrUnsetVariable = errors.NewKind("environment variable %s is not set")

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Credentials is the triple handed to the database client.
type Credentials struct {
	Host     string
	User     string
	Database string
}

// Overrides holds explicit values from the command line. Empty fields are
// not applied.
type Overrides struct {
	Host     string
	User     string
	Database string
}

// Settings is the resolved, read-only view of one environment.
type Settings struct {
	tag   string
	creds Credentials
}

// Load reads the variables named by the preset for tag exactly once. A nil
// lookup uses the process environment.
func Load(cfg *config.Config, tag string, lookup LookupFunc) (Settings, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	p := cfg.Preset(tag)

	host, err := value(p.Host, p.HostEnv, lookup)
	if err != nil {
		return Settings{}, err
	}
	user, err := value(p.User, p.UserEnv, lookup)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		tag: tag,
		creds: Credentials{
			Host:     host,
			User:     user,
			Database: p.Database,
		},
	}, nil
}

func value(literal, name string, lookup LookupFunc) (string, error) {
	if literal != "" {
		return literal, nil
	}
	v, ok := lookup(name)
	if !ok {
		return "", ErrUnsetVariable.New(name)
	}
	return v, nil
}

func (s Settings) Tag() string {
	return s.tag
}

// Preset returns the credentials derived from the tag alone.
func (s Settings) Preset() Credentials {
	return s.creds
}

// Merge replaces each preset field with its override when one was given.
func (s Settings) Merge(o Overrides) Credentials {
	c := s.creds
	if o.Host != "" {
		c.Host = o.Host
	}
	if o.User != "" {
		c.User = o.User
	}
	if o.Database != "" {
		c.Database = o.Database
	}
	return c
}
