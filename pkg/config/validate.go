package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Type {
	case DBTypeSQLite:
		if c.Database.SQLiteFilename == "" {
			errs = append(errs, fmt.Errorf("database.sqlite_filename is required when database.type is %q", DBTypeSQLite))
		}
	case DBTypePostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.url or database.host is required when database.type is %q", DBTypePostgres))
		}
	default:
		errs = append(errs, fmt.Errorf("database.type must be %q or %q, got %q", DBTypeSQLite, DBTypePostgres, c.Database.Type))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("auth.jwt_secret is required"))
	}

	if c.IsProduction() && c.Auth.JWTSecret == DefaultJWTSecret {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be changed in %s", EnvProduction))
	}

	if c.Auth.JWTExpiration <= 0 {
		errs = append(errs, fmt.Errorf("auth.jwt_expiration must be > 0, got %s", c.Auth.JWTExpiration))
	}

	if c.Pagination.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("pagination.default_limit must be > 0, got %d", c.Pagination.DefaultLimit))
	}

	if c.Pagination.MaxLimit < 0 {
		errs = append(errs, fmt.Errorf("pagination.max_limit must be >= 0, got %d", c.Pagination.MaxLimit))
	}

	if c.Port == "" {
		errs = append(errs, fmt.Errorf("port is required"))
	}

	return errors.Join(errs...)
}
