package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// lineFilter 決定一行輸出要不要印、印什麼顏色。
type lineFilter func(line string)

func runTest() error {
	PrintGreen("running tests")
	if err := cleanCache(false); err != nil {
		PrintRed(err.Error())
	}
	return stream(exec.Command("go", "test", "./...", "-cover", "-count=1"), func(line string) {
		switch {
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"),
			strings.Contains(line, "build failed"),
			strings.Contains(line, "setup failed"):
			PrintRed(line)
		}
	})
}

func runTestAll() error {
	PrintGreen("running tests (all with coverage)")
	if err := cleanCache(true); err != nil {
		return err
	}
	return attach(exec.Command("go", "test", "./...", "-cover"))
}

func runTestDetail() error {
	PrintGreen("running tests (detail)")
	if err := cleanCache(true); err != nil {
		return err
	}
	return stream(exec.Command("go", "test", "./...", "-v", "-count=1"), func(line string) {
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		default:
			fmt.Println(line)
		}
	})
}

func runSweepSmoke() error {
	PrintGreen("sweep smoke run")
	return attach(exec.Command("go", "run", "./cmd/run", "sweep",
		"-gender", "female", "-h-from", "150", "-h-to", "180", "-h-step", "5",
		"-w-from", "45", "-w-to", "85", "-w-step", "5", "-worker", "2"))
}

func runProfile() error {
	PrintGreen("cpu profiling sweep -> build/profiling/cpu.pprof")
	return attach(exec.Command("go", "run", "./cmd/run", "sweep", "-p", "cpu", "-h-step", "0.5", "-w-step", "0.5"))
}

func cleanCache(strict bool) error {
	cmd := exec.Command("go", "clean", "-testcache")
	if strict {
		cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go clean -testcache failed: %w", err)
	}
	return nil
}

func attach(cmd *exec.Cmd) error {
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s finished with errors: %w", strings.Join(cmd.Args, " "), err)
	}
	return nil
}

// stream 合併 stdout/stderr（對應 2>&1）並逐行交給 filter。
func stream(cmd *exec.Cmd, filter lineFilter) error {
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Args[0], err)
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		filter(sc.Text())
	}
	scanErr := sc.Err()
	if err := cmd.Wait(); err != nil {
		return errors.Join(errors.New("tests finished with errors"), scanErr)
	}
	return scanErr
}
