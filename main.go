package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"rhs/config"
	"rhs/console"
	httpx "rhs/http"
	"rhs/nfs"
	"rhs/tftp"
)

// loadConfig builds the configuration from the config file, the positional
// arguments, or the file overridden by the arguments.
func loadConfig(prog, path string, args []string, out console.Logger) (config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			out.Error(err.Error())
			return config.Config{}, err
		}
		if len(args) == 0 {
			return cfg, nil
		}
	}
	return config.FromArgs(prog, args, out)
}

// loadStatus is the exit status after loadConfig fails. Bad positional
// arguments have already been reported and end the run quietly with 0.
func loadStatus(err error) int {
	if errors.Is(err, config.ErrUsage) || errors.Is(err, config.ErrInvalidPort) {
		return 0
	}
	return 1
}

func main() {
	configPath := flag.String("config", "", "TOML or YAML file providing directory and port")
	tftpAddr := flag.String("tftp", "", "also serve the directory over TFTP on this address, e.g. :69")
	nfsAddr := flag.String("nfs", "", "also export the directory over NFSv3 on this address, e.g. :2049")
	readTimeout := flag.Duration("read-timeout", 0, "drop a connection whose request takes longer than this (0 waits forever)")
	noColor := flag.Bool("no-color", false, "disable coloured output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [directory] [port]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	out := console.New(os.Stdout, *noColor)

	cfg, err := loadConfig(filepath.Base(os.Args[0]), *configPath, flag.Args(), out)
	if err != nil {
		os.Exit(loadStatus(err))
	}
	cfg, err = cfg.Resolve()
	if err != nil {
		out.Error(err.Error())
		os.Exit(1)
	}

	srv := httpx.NewServer(cfg, out)
	srv.ReadTimeout = *readTimeout

	if *tftpAddr != "" {
		loggerTFTP := log.New(os.Stdout, "tftp ", log.LstdFlags)
		if _, _, err := tftp.StartTFTPServer(*tftpAddr, srv.Root, loggerTFTP); err != nil {
			log.Fatalf("start tftp failure: %v", err)
		}
	}
	if *nfsAddr != "" {
		loggerNFS := log.New(os.Stdout, "nfsd ", log.LstdFlags)
		if _, err := nfs.StartNFSD(*nfsAddr, srv.Root, loggerNFS); err != nil {
			log.Fatalf("start nfsd failure: %v", err)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		out.Info(fmt.Sprintf("received signal %s, exiting", sig))
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil {
		os.Exit(1)
	}
}
