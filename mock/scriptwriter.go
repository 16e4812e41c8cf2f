package mock

import (
	bapanel "github.com/b0id/blackarch-panel"
)

var _ bapanel.ScriptWriter = (*ScriptWriter)(nil)

// ScriptWriter is a mock implementation of bapanel.ScriptWriter.
type ScriptWriter struct {
	WriteScriptFn func(tool *bapanel.Tool) (string, error)
}

func (w *ScriptWriter) WriteScript(tool *bapanel.Tool) (string, error) {
	return w.WriteScriptFn(tool)
}
