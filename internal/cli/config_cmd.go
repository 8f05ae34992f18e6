package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/binbandit/keychainctl/internal/commands"
	"github.com/binbandit/keychainctl/internal/config"
	"github.com/binbandit/keychainctl/internal/registry"
)

func newConfigCmd() *cobra.Command {
	configCmd := commands.GenerateCobraCommand("config", runConfigShow, nil)
	configCmd.AddCommand(
		commands.GenerateCobraCommand("config path", runConfigPath, nil),
		commands.GenerateCobraCommand("config show", runConfigShow, nil),
		commands.GenerateCobraCommand("config init", runConfigInit, nil),
	)
	return configCmd
}

func configExists() (bool, error) {
	_, err := os.Stat(resolvedConfigPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &configError{err: err}
}

func configData(exists bool) map[string]interface{} {
	c := getConfig()
	registryFile := registry.TextFileName
	if c.Registry.Driver == registry.DriverSQLite {
		registryFile = registry.SQLiteFileName
	}
	return map[string]interface{}{
		"config_path": resolvedConfigPath,
		"exists":      exists,
		"backend":     c.Backend,
		"security":    map[string]interface{}{"binary": c.Security.Binary},
		"identity":    map[string]interface{}{"whoami": c.Identity.Whoami},
		"registry": map[string]interface{}{
			"driver": c.Registry.Driver,
			"path":   filepath.Join(c.RegistryDir(resolvedConfigDir), registryFile),
		},
		"keyring": map[string]interface{}{
			"backends": c.Keyring.Backends,
			"file_dir": c.Keyring.FileDir,
		},
		"audit": map[string]interface{}{"enabled": c.Audit.Enabled},
		"log":   map[string]interface{}{"level": c.Log.Level},
		"ui":    map[string]interface{}{"accent": c.UI.Accent},
	}
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	exists, err := configExists()
	if err != nil {
		return err
	}
	if isJSONOutput() {
		emitSuccess(map[string]interface{}{"config_path": resolvedConfigPath, "exists": exists}, nil)
		return nil
	}
	fmt.Println(resolvedConfigPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	exists, err := configExists()
	if err != nil {
		return err
	}

	if isJSONOutput() {
		emitSuccess(configData(exists), nil)
		return nil
	}

	out, err := config.Encode(getConfig())
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("# %s\n", resolvedConfigPath)
	} else {
		fmt.Printf("# %s (not created; showing defaults)\n", resolvedConfigPath)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	created, err := config.WriteDefault(resolvedConfigPath)
	if err != nil {
		return newCodedError(ErrConfigInvalid, "", "%s", err)
	}

	if isJSONOutput() {
		emitSuccess(map[string]interface{}{
			"config_path": resolvedConfigPath,
			"created":     created,
		}, nil)
		return nil
	}

	if created {
		fmt.Printf("Created config: %s\n", resolvedConfigPath)
	} else {
		fmt.Printf("Config already exists: %s\n", resolvedConfigPath)
	}
	return nil
}
