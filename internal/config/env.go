package config

import (
	"fmt"
	"os"
	"reflect"
)

// processStructFields recursively overrides config fields from environment
// variables named by their `env` tags. Every leaf setting in Config is a
// string (durations are parsed where they are consumed), so only string
// fields are assignable.
func processStructFields(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		// Nested sections are processed recursively
		if field.Kind() == reflect.Struct {
			if err := processStructFields(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		envTag := typ.Field(i).Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue, ok := os.LookupEnv(envTag)
		if !ok {
			continue
		}

		if field.Kind() != reflect.String || !field.CanSet() {
			return fmt.Errorf("config field %s tagged %q is not an assignable string", typ.Field(i).Name, envTag)
		}
		field.SetString(envValue)
	}

	return nil
}
