// Package terminal — текстовый клиент калькулятора: интерактивная клавиатура и прогон сценариев.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

// Keypad читает идентификаторы клавиш построчно и после каждой печатает строку операции и дисплей.
type Keypad struct {
	uc  ports.ISessionUseCase
	out io.Writer
	id  string
}

// NewKeypad открывает сессию для терминала.
func NewKeypad(ctx context.Context, uc ports.ISessionUseCase, out io.Writer) (*Keypad, error) {
	view, err := uc.Open(ctx)
	if err != nil {
		return nil, err
	}
	k := &Keypad{uc: uc, out: out, id: view.ID}
	k.render(view)
	return k, nil
}

// Run обрабатывает ввод до EOF или команды quit. Команда history печатает историю.
func (k *Keypad) Run(ctx context.Context, in io.Reader) error {
	defer k.uc.Close(ctx, k.id)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			switch tok {
			case "quit", "exit":
				return nil
			case "history":
				if err := k.history(ctx); err != nil {
					return err
				}
			default:
				if err := k.press(ctx, tok); err != nil {
					return err
				}
			}
		}
	}
	return sc.Err()
}

func (k *Keypad) press(ctx context.Context, key string) error {
	view, err := k.uc.Press(ctx, k.id, []string{key})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnknownKey):
		fmt.Fprintf(k.out, "unknown key %q\n", key)
		return nil
	case errors.Is(err, domain.ErrDivideByZero), errors.Is(err, domain.ErrOverflow):
	default:
		return err
	}
	k.render(view)
	return nil
}

func (k *Keypad) history(ctx context.Context) error {
	view, err := k.uc.Get(ctx, k.id)
	if err != nil {
		return err
	}
	if len(view.History) == 0 {
		fmt.Fprintln(k.out, "history is empty")
		return nil
	}
	for i, r := range view.History {
		fmt.Fprintf(k.out, "%2d. %s\n", i+1, r)
	}
	return nil
}

func (k *Keypad) render(v domain.SessionView) {
	if v.OperationLine != "" {
		fmt.Fprintf(k.out, "%s | %s\n", v.OperationLine, v.Display)
		return
	}
	fmt.Fprintln(k.out, v.Display)
}
