package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

// ErrScript — синтаксическая ошибка в файле сценариев.
var ErrScript = errors.New("script error")

// Result — итог одного сценария.
type Result struct {
	Name     string
	Failures []string
}

// Passed сообщает, прошёл ли сценарий.
func (r Result) Passed() bool { return len(r.Failures) == 0 }

// Report — итог прогона файла.
type Report struct {
	Results []Result
}

// Passed — число прошедших сценариев.
func (r Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed — число упавших сценариев.
func (r Report) Failed() int { return len(r.Results) - r.Passed() }

// Write печатает построчный итог и сводку.
func (r Report) Write(w io.Writer) {
	for _, res := range r.Results {
		if res.Passed() {
			fmt.Fprintf(w, "PASS %s\n", res.Name)
			continue
		}
		fmt.Fprintf(w, "FAIL %s\n", res.Name)
		for _, f := range res.Failures {
			fmt.Fprintf(w, "     %s\n", f)
		}
	}
	fmt.Fprintf(w, "passed: %d, failed: %d, total: %d\n", r.Passed(), r.Failed(), len(r.Results))
}

// RunScript прогоняет сценарии. Формат файла, по строке на директиву:
//
//	# комментарий
//	scenario <имя>             новая сессия
//	press <клавиша>...         нажать клавиши по порядку
//	expect display <текст>     дисплей
//	expect entry <текст>       текущий ввод
//	expect line <текст>        строка операции ("-" — пустая)
//	expect history <n> <текст> n-я запись истории, 1 — последняя
//	expect history-len <n>     длина истории
//	expect error <текст>       ошибка последнего press ("-" — без ошибки)
//
// Ошибки в самом файле возвращаются как ErrScript, упавшие проверки — в Report.
func RunScript(ctx context.Context, uc ports.ISessionUseCase, in io.Reader) (Report, error) {
	var (
		report  Report
		cur     *Result
		id      string
		view    domain.SessionView
		lastErr error
	)
	closeCurrent := func() {
		if cur != nil {
			report.Results = append(report.Results, *cur)
			_ = uc.Close(ctx, id)
			cur = nil
		}
	}

	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		directive, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if directive == "scenario" {
			closeCurrent()
			if rest == "" {
				return report, fmt.Errorf("%w: line %d: scenario needs a name", ErrScript, lineNo)
			}
			v, err := uc.Open(ctx)
			if err != nil {
				return report, err
			}
			cur, id, view, lastErr = &Result{Name: rest}, v.ID, v, nil
			continue
		}
		if cur == nil {
			return report, fmt.Errorf("%w: line %d: %q before first scenario", ErrScript, lineNo, directive)
		}

		switch directive {
		case "press":
			keys := strings.Fields(rest)
			if len(keys) == 0 {
				return report, fmt.Errorf("%w: line %d: press needs keys", ErrScript, lineNo)
			}
			v, err := uc.Press(ctx, id, keys)
			lastErr = err
			if err == nil || errors.Is(err, domain.ErrDivideByZero) || errors.Is(err, domain.ErrOverflow) {
				view = v
			} else if errors.Is(err, domain.ErrUnknownKey) {
				cur.Failures = append(cur.Failures, fmt.Sprintf("line %d: %v", lineNo, err))
			} else {
				return report, err
			}
		case "expect":
			failure, err := check(view, lastErr, rest)
			if err != nil {
				return report, fmt.Errorf("%w: line %d: %v", ErrScript, lineNo, err)
			}
			if failure != "" {
				cur.Failures = append(cur.Failures, fmt.Sprintf("line %d: %s", lineNo, failure))
			}
		default:
			return report, fmt.Errorf("%w: line %d: unknown directive %q", ErrScript, lineNo, directive)
		}
	}
	if err := sc.Err(); err != nil {
		return report, err
	}
	closeCurrent()
	return report, nil
}

// check сравнивает одно ожидание. Возвращает текст расхождения или ошибку синтаксиса.
func check(view domain.SessionView, lastErr error, expr string) (string, error) {
	what, want, _ := strings.Cut(expr, " ")
	want = strings.TrimSpace(want)

	var got string
	switch what {
	case "display":
		got = view.Display
	case "entry":
		got = view.State.CurrentEntry
	case "line":
		got = orDash(view.OperationLine)
	case "error":
		got = "-"
		if lastErr != nil {
			got = view.Error
			if got == "" {
				got = lastErr.Error()
			}
		}
	case "history-len":
		got = strconv.Itoa(len(view.History))
	case "history":
		nStr, text, _ := strings.Cut(want, " ")
		n, err := strconv.Atoi(nStr)
		if err != nil || n < 1 {
			return "", fmt.Errorf("history index must be a positive integer, got %q", nStr)
		}
		want = strings.TrimSpace(text)
		got = "-"
		if n <= len(view.History) {
			got = view.History[n-1].String()
		}
		what = "history " + nStr
	default:
		return "", fmt.Errorf("unknown expectation %q", what)
	}

	if got != want {
		return fmt.Sprintf("%s: want %q, got %q", what, want, got), nil
	}
	return "", nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
