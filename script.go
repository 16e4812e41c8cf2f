package bapanel

// ScriptWriter renders runnable wrapper scripts for tools.
type ScriptWriter interface {
	// WriteScript writes a wrapper script for the tool and returns the
	// path of the written file.
	WriteScript(tool *Tool) (string, error)
}
