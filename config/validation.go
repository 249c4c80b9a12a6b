package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/gaborage/dbfixture/database/types"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report koanf key paths instead of Go field names.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks cfg and returns the first problem as a *ConfigError.
func Validate(cfg *Config) error {
	if err := structValidator().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return err
	}
	return validateDatabase(&cfg.Database)
}

// validateDatabase applies rules that depend on the vendor.
func validateDatabase(cfg *DatabaseConfig) error {
	if cfg.ConnectionString != "" {
		return nil
	}
	if cfg.Database == "" {
		return NewMissingFieldError("database.database")
	}
	if cfg.Type == types.SQLite {
		return nil
	}
	if cfg.Host == "" {
		return NewMissingFieldError("database.host")
	}
	if cfg.Port == 0 {
		return NewMissingFieldError("database.port")
	}
	return nil
}

func fieldError(fe validator.FieldError) *ConfigError {
	// Namespace is "Config.database.type"; drop the root struct name.
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return NewMissingFieldError(field)
	case "oneof":
		return NewInvalidFieldError(field, fmt.Sprintf("invalid value %q", fmt.Sprint(fe.Value())), strings.Fields(fe.Param()))
	case "gte", "lte":
		return NewInvalidFieldError(field, fmt.Sprintf("value %v must be %s %s", fe.Value(), comparison(fe.Tag()), fe.Param()), nil)
	}
	return NewInvalidFieldError(field, fmt.Sprintf("failed %s validation", fe.Tag()), nil)
}

func comparison(tag string) string {
	if tag == "gte" {
		return ">="
	}
	return "<="
}
