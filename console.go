package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
)

// Console is the operator channel. The pipeline never touches stdout
// or stdin directly so tests can script the operator.
type Console interface {
	Println(a ...any)
	Printf(format string, a ...any)
	Confirm(prompt string) (bool, error)
}

type terminalConsole struct {
	out io.Writer
	in  *bufio.Reader
}

func NewTerminalConsole() *terminalConsole {
	return &terminalConsole{out: os.Stdout, in: bufio.NewReader(os.Stdin)}
}

func (c *terminalConsole) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *terminalConsole) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Confirm reads one line and accepts only "y"/"yes". EOF counts as
// "no"; an interrupt while waiting cancels the pending action without
// killing the run.
func (c *terminalConsole) Confirm(prompt string) (bool, error) {
	fmt.Fprint(c.out, prompt)
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)
	defer signal.Stop(sigch)
	type readResult struct {
		text string
		err  error
	}
	lines := make(chan readResult, 1)
	go func() {
		text, err := c.in.ReadString('\n')
		lines <- readResult{text: text, err: err}
	}()
	select {
	case <-sigch:
		fmt.Fprintln(c.out)
		return false, pipeErr(OperatorCancelled, "", nil)
	case res := <-lines:
		if res.err != nil && res.text == "" {
			return false, nil
		}
		ans := strings.ToLower(strings.TrimSpace(res.text))
		return ans == "y" || ans == "yes", nil
	}
}
