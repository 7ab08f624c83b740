// Command calculator — калькулятор в терминале.
//
//	calculator                  интерактивный режим: клавиши через пробел, history, quit
//	calculator -script file     прогон сценариев; код выхода 0 — всё прошло, 1 — есть падения, 2 — ошибка запуска
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"deskCalc/internal/api/terminal"
	"deskCalc/internal/pkg/logger"
	"deskCalc/internal/usecase/session"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calculator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	script := fs.String("script", "", "файл сценариев (scenario/press/expect)")
	logLevel := fs.String("log-level", "error", "уровень логов: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// В терминале нет таймера перерисовки, поэтому ошибка держится до следующей клавиши.
	sessions := session.New(session.Config{}, nil, logger.NewWithWriter(stderr, *logLevel))

	if *script != "" {
		return runScript(ctx, *script, sessions, stdout, stderr)
	}

	keypad, err := terminal.NewKeypad(ctx, sessions, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := keypad.Run(ctx, stdin); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runScript(ctx context.Context, path string, sessions *session.UseCase, stdout, stderr io.Writer) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer f.Close()

	report, err := terminal.RunScript(ctx, sessions, f)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, terminal.ErrScript) {
			return 2
		}
		return 1
	}
	report.Write(stdout)
	if report.Failed() > 0 {
		return 1
	}
	return 0
}
