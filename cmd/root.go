package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sw33tLie/pwcheck/internal/config"
	"github.com/sw33tLie/pwcheck/internal/utils"
)

var cfgFile string

const (
	LOGO = `
                         _               _
 _ ____      _____   ___| |__   ___  ___| | __
| '_ \ \ /\ / / __| / __| '_ \ / _ \/ __| |/ /
| |_) \ V  V /\__ \ (__| | | |  __/ (__|   <
| .__/ \_/\_/ |___/\___|_| |_|\___|\___|_|\_\
|_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pwcheck",
	Short: "Password complexity checker and secure password generator.",
	Long: LOGO + `pwcheck rates passwords against length, character diversity, common-password,
sequence, dictionary, blacklist and entropy checks, and generates strong random passwords.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pwcheck.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Int("min-length", 8, "Minimum accepted password length")
	rootCmd.PersistentFlags().Int("max-length", 128, "Maximum accepted password length")
	rootCmd.PersistentFlags().StringP("blacklist", "b", "", "Path to a newline-delimited blacklist file (e.g. rockyou.txt)")
	rootCmd.PersistentFlags().String("blacklist-url", "", "URL of a blacklist to download")
	rootCmd.PersistentFlags().String("blacklist-json-path", "", "gjson path selecting passwords when the blacklist URL serves JSON (e.g. data.#.value)")
	rootCmd.PersistentFlags().String("dbpath", "", "Path to the SQLite history DB (default: ~/.config/pwcheck/history.sqlite)")
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy used to download blacklists")

	bindFlag(config.KeyMinLength, "min-length")
	bindFlag(config.KeyMaxLength, "max-length")
	bindFlag(config.KeyBlacklistPath, "blacklist")
	bindFlag(config.KeyBlacklistURL, "blacklist-url")
	bindFlag(config.KeyBlacklistJSONPath, "blacklist-json-path")
	bindFlag(config.KeyHistoryDB, "dbpath")
	bindFlag(config.KeyProxy, "proxy")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	if err := utils.SetLogLevel(levelString); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	utils.SetLogOutput(os.Stderr)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		utils.Log.Warnf("Could not load .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".pwcheck")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PWCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			utils.Log.Warnf("Could not read config file: %v", err)
		}
	} else {
		utils.Log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}

	noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
	colorsEnabled = !noColor
}
