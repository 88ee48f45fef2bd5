package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/barter"
	barterd "github.com/iov-one/barter/cmd/barterd/app"
	"github.com/iov-one/barter/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome   = "home"
	flagConfig = "config"
	varHome    *string
	varConfig  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".barterd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varConfig = flag.String(flagConfig, "", "path to the TOML config file (default \"$HOME/.barterd/"+server.ConfigFile+"\")")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("barterd")
	fmt.Println("          Two party asset swap node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check that genesis files can be loaded")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.barterd")
  -config string
        path to the TOML config file (default "$HOME/.barterd/barterd.toml")

start flags:
  -bind string
        address server listens on (default "tcp://localhost:26658")
  -debug
        call stack returned on error
  -metrics string
        address of the prometheus metrics endpoint`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "barter")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	configPath := *varConfig
	if configPath == "" {
		configPath = filepath.Join(*varHome, server.ConfigFile)
	}

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(barterd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(barterd.GenerateApp, logger, *varHome, configPath, rest)
	case "validate":
		err = server.ValidateGenesis(barterd.Initializers(), rest)
	case "version":
		fmt.Println(barter.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
