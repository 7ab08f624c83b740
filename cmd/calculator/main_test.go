package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{name: "все сценарии прошли", args: []string{"-script", "testdata/pass.calc"}, code: 0, out: "passed: 2, failed: 0, total: 2"},
		{name: "есть падения", args: []string{"-script", "testdata/fail.calc"}, code: 1, out: "FAIL wrong"},
		{name: "нет файла", args: []string{"-script", "testdata/missing.calc"}, code: 2},
		{name: "неизвестный флаг", args: []string{"-verbose"}, code: 2},
		{name: "лишние аргументы", args: []string{"extra"}, code: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(tt.args, strings.NewReader(""), &stdout, &stderr)

			assert.Equal(t, tt.code, code, stderr.String())
			assert.Contains(t, stdout.String(), tt.out)
		})
	}
}

func TestRun_Interactive(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, strings.NewReader("1 2 * 2 =\nhistory\n"), &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "24 = | 24\n")
	assert.Contains(t, stdout.String(), " 1. 12 * 2 = 24\n")
}
