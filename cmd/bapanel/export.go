package main

import (
	"encoding/json"
	"fmt"
	"os"

	bapanel "github.com/b0id/blackarch-panel"
)

// exportTools writes the tools matching the filter to a JSON snapshot file.
func exportTools(deps *Dependencies, filter bapanel.ToolFilter, path string) error {
	snap, err := bapanel.BuildSnapshot(deps.Ctx, deps.Tools, filter)
	if err != nil {
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return bapanel.Errorf(bapanel.EINTERNAL, "marshal snapshot: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(err.Error()))
		return err
	}

	fmt.Fprintln(deps.Stdout, deps.Renderer.Success(fmt.Sprintf("Exported %d tools to %s", len(snap.Tools), path)))
	return nil
}

// importTools loads a JSON snapshot file into the store. The whole file is
// applied in one transaction; any bad record rolls everything back.
func importTools(deps *Dependencies, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(fmt.Sprintf("Error loading JSON file: %s", err)))
		return err
	}

	var snap bapanel.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		err = bapanel.Errorf(bapanel.EINVALID, "Error loading JSON file: %v", err)
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return err
	}

	n, err := deps.Tools.ImportSnapshot(deps.Ctx, &snap)
	if err != nil {
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return err
	}

	fmt.Fprintln(deps.Stdout, deps.Renderer.Success(fmt.Sprintf("Imported %d tools from %s", n, path)))
	return nil
}
