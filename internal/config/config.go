// Package config holds globally available configuration variables, either
// set by defaults or read from an optional TOML config file.
package config

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ConfFile is the path to the TOML config file (relative to the
	// working directory). Missing the file is not an error: defaults apply.
	ConfFile = "./config.toml"

	// LogLevel is the general engine log level.
	LogLevel = "INFO"

	// Settings is the global configuration, populated by Setup.
	Settings conf

	initialized = false
)

type conf struct {
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup reads the configuration file (if present) and falls back to the
// defaults set in each sub-config's init().
func Setup() {
	if initialized {
		return
	}
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		log.Println("config file not found, using defaults (", err, ")")
	}
	initialized = true
}

// String renders the active configuration via reflection, one line per field.
func (c *conf) String() string {
	var b strings.Builder
	b.WriteString("Search Config:\n")
	writeFields(&b, reflect.ValueOf(&c.Search).Elem())
	b.WriteString("\nEval Config:\n")
	writeFields(&b, reflect.ValueOf(&c.Eval).Elem())
	return b.String()
}

func writeFields(b *strings.Builder, v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		fmt.Fprintf(b, "%-2d: %-20s %-6s = %v\n", i, t.Field(i).Name, f.Type(), f.Interface())
	}
}
