package main

import (
	"bytes"
	"fmt"
	"os/exec"
)

// runHelpCommand shells out to a tool's stored help invocation and prints
// whatever it produces. Help commands routinely exit non-zero, so the exit
// status is not treated as a failure.
func runHelpCommand(deps *Dependencies, command string) {
	fmt.Fprintf(deps.Stdout, "Executing: %s\n\n", command)

	cmd := exec.CommandContext(deps.Ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	_ = cmd.Run()

	if stdout.Len() > 0 {
		fmt.Fprintln(deps.Stdout, stdout.String())
	}
	if stderr.Len() > 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Error(stderr.String()))
	}
	if stdout.Len() == 0 && stderr.Len() == 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("No output from help command."))
	}
}
