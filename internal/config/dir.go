package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

const (
	APP_NAME = "kaleido"
	ENV_FILE = "env"
)

var DEFAULT_ENV_FILE string = `K_PROMPT=ready> 
K_HISTORY=history
K_OPT=debug
`

type Envs struct {
	PROMPT  string `env:"K_PROMPT"`
	HISTORY string `env:"K_HISTORY"`
	OPT     string `env:"K_OPT"`
}

func DefaultEnvs() *Envs {
	return &Envs{
		PROMPT:  "ready> ",
		HISTORY: "history",
		OPT:     "debug",
	}
}

func (e *Envs) ShowAll(w io.Writer) {
	v := reflect.ValueOf(e)

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	for i := range v.NumField() {
		field := v.Type().Field(i)
		fieldValue := v.Field(i)

		envTag := field.Tag.Get("env")
		if envTag != "" {
			fmt.Fprintf(w, "%s='%s'\n", envTag, fieldValue.String())
		}
	}
}

// HistoryPath resolves K_HISTORY against the config directory.
func (e *Envs) HistoryPath(configDir string) string {
	if e.HISTORY == "" || filepath.IsAbs(e.HISTORY) {
		return e.HISTORY
	}
	return filepath.Join(configDir, e.HISTORY)
}

func (e *Envs) BuildType() (BuildType, error) {
	return ParseBuildType(e.OPT)
}

// SetupConfigDir makes sure the config directory exists and loads its env
// file, creating it with defaults on first run.
func SetupConfigDir() (string, *Envs, error) {
	configDir, err := getConfigDir(APP_NAME)
	if err != nil {
		return "", nil, err
	}

	envs, err := LoadEnvs(filepath.Join(configDir, ENV_FILE))
	if err != nil {
		return "", nil, err
	}
	return configDir, envs, nil
}

func LoadEnvs(path string) (*Envs, error) {
	values, err := loadEnvFile(path)
	if err != nil {
		return nil, err
	}

	envs := DefaultEnvs()
	err = MapEnvToStruct(values, envs)
	if err != nil {
		return nil, err
	}
	return envs, nil
}

func getConfigDir(appName string) (string, error) {
	var configDir string

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		configDir = filepath.Join(configHome, appName)
	} else if homeDir, err := os.UserHomeDir(); err == nil {
		if os.Getenv("OS") == "Windows_NT" {
			configDir = filepath.Join(os.Getenv("APPDATA"), appName)
		} else {
			configDir = filepath.Join(homeDir, ".config", appName)
		}
	} else {
		return "", fmt.Errorf("could not determine home directory")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

func loadEnvFile(path string) (map[string]string, error) {
	env := make(map[string]string)
	var envFileCreated bool

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			newFile, err := os.Create(path)
			if err != nil {
				return nil, err
			}
			file = newFile
			envFileCreated = true
		} else {
			return nil, err
		}
	}
	defer func() { file.Close() }()

	// NOTE: development builds always start from the default env file
	if DEV && !envFileCreated {
		envFileCreated = true
	}

	if envFileCreated {
		err := writeStringToFile(path, DEFAULT_ENV_FILE)
		if err != nil {
			return nil, err
		}
		file.Close()
		file, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		// values keep their trailing blanks, prompts usually end in one
		value := strings.TrimLeft(parts[1], " \t")
		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return env, nil
}

func writeStringToFile(fileName, content string) error {
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	if err != nil {
		return err
	}

	return nil
}

func MapEnvToStruct(data map[string]string, result any) error {
	v := reflect.ValueOf(result)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("expected a pointer to a struct, got %T", result)
	}
	v = v.Elem()
	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		fieldValue := v.Field(i)

		envTag := field.Tag.Get("env")
		if envTag != "" {
			if value, ok := data[envTag]; ok {
				if fieldValue.CanSet() && fieldValue.Kind() == reflect.String {
					fieldValue.SetString(value)
				}
			}
		}
	}

	return nil
}
