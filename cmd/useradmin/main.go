// Command useradmin performs operator maintenance on user accounts:
//
//	useradmin reset-password -email E -password P
//	useradmin change-role    -email E -role R
//	useradmin delete-user    -email E
//	useradmin list-users
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"mealscan_backend/internal/app/di"
	authadapters "mealscan_backend/internal/feature/auth/adapters"
	"mealscan_backend/internal/platform/config"
	"mealscan_backend/internal/platform/logger"
)

const usage = `usage: useradmin [-config FILE] <command> [flags]

commands:
  reset-password -email E -password P   set a new password and close all sessions
  change-role    -email E -role R       set STUDENT, MESS_CONTRACTOR or CANTEEN_CONTRACTOR
  delete-user    -email E               delete the user and every record referencing them
  list-users                            print every account
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "useradmin:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("useradmin", flag.ContinueOnError)
	configPath := global.String("config", "", "path to a config file")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}
	cmdName, cmdArgs := global.Arg(0), global.Args()[1:]

	cmd, err := parseCommand(cmdName, cmdArgs)
	if err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	infra, err := di.OpenInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = infra.Close() }()

	app, err := di.NewApp(cfg, infra.DB, infra.Redis, log)
	if err != nil {
		return err
	}
	if err := cmd.exec(ctx, app, authadapters.NewUserGorm(infra.DB), out); err != nil {
		return err
	}
	if cmd.email == "" {
		return nil
	}

	log.Info("useradmin command completed", zap.String("command", cmdName), zap.String("email", cmd.email))
	fmt.Fprintf(out, "%s: done for %s\n", cmdName, cmd.email)
	return nil
}
