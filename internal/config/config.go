package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// DefaultFile is read from the working directory when --config is not set.
const DefaultFile = "restdoc.yaml"

type Config struct {
	Packages         []string        `koanf:"packages"`
	Dir              string          `koanf:"dir"`
	ParseModels      bool            `koanf:"parse-models"`
	ResponseTags     []string        `koanf:"response-tags" validate:"dive,required"`
	OpaqueTypes      []string        `koanf:"opaque-types" validate:"dive,required"`
	ExcludeMarkers   []string        `koanf:"exclude-markers" validate:"dive,required"`
	ShadowType       string          `koanf:"shadow-type"`
	InjectedTypes    []string        `koanf:"injected-types" validate:"dive,required"`
	ReservedPackages []string        `koanf:"reserved-packages" validate:"dive,required"`
	Naming           NamingConfig    `koanf:"naming"`
	Output           OutputConfig    `koanf:"output"`
	Templates        TemplatesConfig `koanf:"templates"`
	Concurrency      int             `koanf:"concurrency" validate:"min=1,max=256"`
}

type NamingConfig struct {
	Convention string `koanf:"convention" validate:"oneof=field camel snake kebab"`
}

type TemplatesConfig struct {
	Dir string `koanf:"dir"`
}

type OutputConfig struct {
	File   string `koanf:"file"`
	Format string `koanf:"format" validate:"oneof=yaml json markdown"`
}

// Defaults returns the built-in configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"parse-models":      true,
		"response-tags":     []string{"HTTP"},
		"exclude-markers":   []string{"inject", "ignore"},
		"shadow-type":       "net/textproto.MIMEHeader",
		"injected-types":    []string{"context.Context", "net/http.ResponseWriter", "net/http.Request"},
		"naming.convention": "camel",
		"output.format":     "yaml",
		"concurrency":       4,
	}
}

// BindCommonFlags binds the flags shared by every command.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: "+DefaultFile+")")
	flags.String("dir", "", "Working directory for package resolution")
	flags.Bool("no-models", false, "Do not expand models")
	flags.StringSlice("response-tags", nil, "Doc tags read as response messages")
	flags.StringSlice("opaque-types", nil, "Qualified type names never expanded into models")
	flags.StringSlice("exclude-markers", nil, "Markers that exclude a parameter")
	flags.String("shadow-type", "", "Qualified type name of metadata shadow parameters")
	flags.String("naming", "", "Member naming convention: field, camel, snake, kebab")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.StringP("format", "f", "", "Output format: yaml, json, markdown")
	flags.String("templates", "", "Directory of templates overriding the built-in markdown templates")
	flags.Int("concurrency", 0, "Number of operations extracted in parallel")
	flags.BoolP("verbose", "v", false, "Log skipped declarations")
	flags.Bool("dry-run", false, "Print output to stdout instead of writing files")
}

// Load layers defaults, the config file and command-line flags. Packages
// given as arguments replace the configured ones.
func Load(cmd *cobra.Command, packages []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if len(packages) > 0 {
		cfg.Packages = packages
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	getBool := func(name string) bool {
		if v, err := cmd.Flags().GetBool(name); err == nil {
			return v
		}
		if v, err := cmd.PersistentFlags().GetBool(name); err == nil {
			return v
		}
		return false
	}

	getInt := func(name string) int {
		if v, err := cmd.Flags().GetInt(name); err == nil {
			return v
		}
		if v, err := cmd.PersistentFlags().GetInt(name); err == nil {
			return v
		}
		return 0
	}

	if v := getString("dir"); v != "" {
		m["dir"] = v
	}
	if flagChanged("no-models") {
		m["parse-models"] = !getBool("no-models")
	}
	if v := getStringSlice("response-tags"); len(v) > 0 {
		m["response-tags"] = v
	}
	if v := getStringSlice("opaque-types"); len(v) > 0 {
		m["opaque-types"] = v
	}
	if v := getStringSlice("exclude-markers"); len(v) > 0 {
		m["exclude-markers"] = v
	}
	if v := getString("shadow-type"); v != "" {
		m["shadow-type"] = v
	}
	if v := getString("naming"); v != "" {
		m["naming.convention"] = v
	}
	if v := getString("output"); v != "" {
		m["output.file"] = v
	}
	if v := getString("format"); v != "" {
		m["output.format"] = v
	}
	if v := getString("templates"); v != "" {
		m["templates.dir"] = v
	}
	if flagChanged("concurrency") {
		m["concurrency"] = getInt("concurrency")
	}

	return m
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	return v
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, fmt.Sprintf("invalid %s: %s", configKey(ve), formatValidationError(ve)))
	}
	return errors.New(strings.Join(messages, "; "))
}

// configKey turns "Config.naming.convention" into "naming.convention".
func configKey(ve validator.FieldError) string {
	_, key, _ := strings.Cut(ve.Namespace(), ".")
	return key
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "must not be empty"
	case "oneof":
		return fmt.Sprintf("%v (valid: %s)", ve.Value(), strings.ReplaceAll(ve.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
