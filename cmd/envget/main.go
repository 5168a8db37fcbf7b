// envget prints one value from an env file: envget [-known] NAME
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/it-atelier-gn/envloader/internal/config"
	"github.com/it-atelier-gn/envloader/internal/dotenv"
	"github.com/it-atelier-gn/envloader/internal/keys"
	"github.com/it-atelier-gn/envloader/internal/version"
)

func main() {
	var versionFlag, knownFlag, silentFlag bool
	var fileFlag string
	flag.BoolVar(&versionFlag, "version", false, "print version")
	flag.StringVar(&fileFlag, "file", "", "env file to load (default from config, usually .env)")
	flag.BoolVar(&knownFlag, "known", false, "treat NAME as a known-key identifier (host, port, ...)")
	flag.BoolVar(&silentFlag, "silent", false, "do not complain when the env file is missing")
	flag.Parse()

	if versionFlag {
		version.PrintVersion()
		return
	}

	if flag.NArg() != 1 {
		log.Fatalf("usage: envget [-file F] [-known] NAME")
	}
	name := flag.Arg(0)

	config.InitConfig()
	if err := keys.LoadAliases(); err != nil {
		log.Printf("cannot load key aliases: %v", err)
	}

	filename := fileFlag
	if filename == "" {
		filename = viper.GetString("file")
	}

	env := dotenv.New(false)
	env.MaxRead = viper.GetInt64("read_max_bytes")
	if err := env.Load(filename, false, silentFlag || viper.GetBool("silent")); err != nil {
		log.Fatalf("cannot load %s: %v", filename, err)
	}

	var value string
	var err error
	if knownFlag {
		k, ok := keys.Parse(name)
		if !ok {
			log.Fatalf("%q is not a known key (known: %v)", name, keys.All())
		}
		value, err = env.GetKnown(k)
	} else {
		value, err = env.Get(name)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(value)
}
