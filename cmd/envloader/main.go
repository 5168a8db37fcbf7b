package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/viper"

	"github.com/it-atelier-gn/envloader/internal/config"
	"github.com/it-atelier-gn/envloader/internal/dotenv"
	"github.com/it-atelier-gn/envloader/internal/envio"
	"github.com/it-atelier-gn/envloader/internal/keys"
	"github.com/it-atelier-gn/envloader/internal/osenv"
	"github.com/it-atelier-gn/envloader/internal/run"
	"github.com/it-atelier-gn/envloader/internal/utils"
	"github.com/it-atelier-gn/envloader/internal/version"
	"github.com/it-atelier-gn/envloader/internal/watch"
)

func main() {
	var versionFlag, silentFlag, setFlag, watchFlag, ambientFlag, applyOneLiner bool
	var fileFlag string
	var shellFlag string
	var formatFlag string
	var onlyFlag string
	var excludeFlag string
	var appendFlag string
	var templatesFlag string

	flag.BoolVar(&versionFlag, "version", false, "print version")
	flag.StringVar(&fileFlag, "file", "", "env file to load (default from config, usually .env)")
	flag.BoolVar(&silentFlag, "silent", false, "do not complain when the env file is missing")
	flag.BoolVar(&setFlag, "set", false, "apply loaded entries to this process's environment")
	flag.StringVar(&shellFlag, "shell", "auto", "shell to output env for: auto|sh|pwsh|cmd (auto-detect if auto)")
	flag.StringVar(&formatFlag, "format", "env", "output format: env|json|yaml|raw")
	flag.StringVar(&onlyFlag, "only", "", "comma-separated list of variables to include (optional)")
	flag.StringVar(&excludeFlag, "exclude", "", "comma-separated list of variables to exclude (optional)")
	flag.StringVar(&appendFlag, "append", "", "append KEY=VALUE to the env file before printing")
	flag.StringVar(&templatesFlag, "templates", "", "load all .env.tpl* files under this directory instead of a single file")
	flag.BoolVar(&watchFlag, "watch", false, "keep running and reload when the env file changes")
	flag.BoolVar(&ambientFlag, "ambient", false, "include the ambient process environment in output")
	flag.BoolVar(&applyOneLiner, "apply-one-liner", false, "print a shell-specific one-liner to apply the env in the current shell")
	flag.Parse()

	if versionFlag {
		version.PrintVersion()
		return
	}

	shellToUse := shellFlag
	if shellFlag == "auto" {
		shellToUse = utils.DetectShell()
	}

	if applyOneLiner {
		fmt.Println(oneLinerForShell(shellToUse, exeName()))
		return
	}

	config.InitConfig()
	if err := keys.LoadAliases(); err != nil {
		log.Printf("cannot load key aliases: %v", err)
	}

	filename := fileFlag
	if filename == "" {
		filename = viper.GetString("file")
	}
	silent := silentFlag || viper.GetBool("silent")

	env := dotenv.New(false)
	env.MaxRead = viper.GetInt64("read_max_bytes")

	if templatesFlag != "" {
		b, err := envio.CombineTemplates(templatesFlag, ".env.tpl*")
		if err != nil {
			log.Fatalf("cannot read templates: %v", err)
		}
		for _, perr := range env.Parse(b) {
			log.Printf("%s: %v", templatesFlag, perr)
		}
		if setFlag {
			if err := env.SetInProcess(osenv.System{}); err != nil {
				log.Fatalf("cannot apply environment: %v", err)
			}
		}
	} else {
		if err := env.Load(filename, setFlag, silent); err != nil {
			log.Fatalf("cannot load %s: %v", filename, err)
		}
	}

	if appendFlag != "" {
		k, v, ok := osenv.SplitEntry(appendFlag)
		if !ok || strings.TrimSpace(k) == "" {
			log.Fatalf("-append wants KEY=VALUE, got %q", appendFlag)
		}
		if err := env.AppendToFile(strings.TrimSpace(k), v, filename); err != nil {
			log.Fatalf("cannot append to %s: %v", filename, err)
		}
	}

	parsed := filterEnv(exportMap(env, ambientFlag), splitList(onlyFlag), splitList(excludeFlag))

	args := flag.Args()
	if len(args) > 0 && args[0] == "run" {
		if len(args) < 2 {
			log.Fatalf("run requires a command to execute")
		}
		if err := run.RunCommandWithEnv(args[1], args[2:], parsed); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				os.Exit(exitErr.ExitCode())
			}
			log.Fatalf("command failed: %v", err)
		}
		return
	}

	printOutput(parsed, formatFlag, shellToUse)

	if watchFlag {
		runWatch(env.MaxRead, filename, setFlag, silent, formatFlag, shellToUse, ambientFlag, onlyFlag, excludeFlag)
	}
}

// runWatch reprints (and optionally reapplies) the environment every time
// the file changes, until interrupted.
func runWatch(maxRead int64, filename string, setFlag, silent bool, format, shell string, ambient bool, only, exclude string) {
	lock, err := utils.AcquireInstanceLock("envloader-watch.lock")
	if err != nil {
		log.Fatalf("another watcher appears to be running: %v", err)
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(filename, func() {
		fresh := dotenv.New(false)
		fresh.MaxRead = maxRead
		if err := fresh.Load(filename, setFlag, silent); err != nil {
			log.Printf("reload %s: %v", filename, err)
			return
		}
		log.Printf("%s changed, %d entries", filename, fresh.Len())
		printOutput(filterEnv(exportMap(fresh, ambient), splitList(only), splitList(exclude)), format, shell)
	})

	if err := watcher.Start(ctx); err != nil {
		log.Fatalf("cannot watch %s: %v", filename, err)
	}
	<-ctx.Done()
}

func exportMap(env *dotenv.Env, includeAmbient bool) map[string]string {
	out := make(map[string]string)
	for _, kv := range env.ExportAll(includeAmbient) {
		if k, v, ok := osenv.SplitEntry(kv); ok {
			out[k] = v
		}
	}
	return out
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func exeName() string {
	name := os.Args[0]
	if idx := strings.LastIndex(name, string(os.PathSeparator)); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
