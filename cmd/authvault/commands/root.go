package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/password"
)

// app is what every subcommand runs against.
type app struct {
	store  *credstore.Store
	vault  *credstore.Vault
	closer func() error
}

func (a *app) close() error {
	if a == nil {
		return nil
	}
	if a.vault != nil {
		a.vault.Lock()
	}
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		cfg     settings
		envFile string
		current *app
	)

	root := &cobra.Command{
		Use:           "authvault",
		Short:         "Inspect and repair an authcore credential store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			fileVars, err := loadEnv(envFile)
			if err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			cfg.fillFromEnv(fileVars)
			if err := cfg.resolveHome(); err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.home, 0o700); err != nil {
				return err
			}
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			current = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return current.close()
		},
	}

	root.PersistentFlags().StringVar(&cfg.home, "home", "", "store dir (default ~/.authvault)")
	root.PersistentFlags().StringVarP(&cfg.passphrase, "passphrase", "p", "", "vault passphrase; without it only the fallback backend is used")
	root.PersistentFlags().StringVar(&cfg.redisAddr, "redis", "", "redis address for the fallback backend")
	root.PersistentFlags().StringVar(&cfg.redisPrefix, "prefix", "", "redis key prefix (default acs)")
	root.PersistentFlags().StringVar(&cfg.logLevel, "log-level", "", "zerolog level (default warn)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load")

	appFn := func() *app { return current }
	root.AddCommand(
		keysCmd(appFn),
		getCmd(appFn),
		setCmd(appFn),
		deleteCmd(appFn),
		showSessionCmd(appFn),
		clearSessionCmd(appFn),
	)
	return root
}

func openApp(cfg settings) (*app, error) {
	logger, err := cfg.logger()
	if err != nil {
		return nil, err
	}

	a := &app{}
	var fallback credstore.Backend
	if cfg.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.redisAddr})
		fallback = credstore.NewRedis(client, cfg.redisPrefix)
		a.closer = client.Close
	} else {
		fallback = credstore.NewJSONFile(filepath.Join(cfg.home, fallbackFile))
	}

	var secure credstore.Backend
	if cfg.passphrase != "" {
		v, err := credstore.NewVault(filepath.Join(cfg.home, vaultFile), cfg.passphrase, password.DefaultKDFParams())
		if err != nil {
			_ = a.close()
			return nil, err
		}
		a.vault = v
		secure = v
	}

	store, err := credstore.New(credstore.Options{
		Secure:   secure,
		Fallback: fallback,
		Logger:   &logger,
	})
	if err != nil {
		_ = a.close()
		return nil, err
	}
	a.store = store
	return a, nil
}
