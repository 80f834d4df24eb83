package loader

// RegisterDefaultCompanions installs every built-in companion module this
// repo ships (json, shell, process, repl, ui.term) onto l. Split out from
// New so a caller assembling a Loader for tests can start from an empty
// companion set instead.
func RegisterDefaultCompanions(l *Loader) {
	l.RegisterCompanion("json", companionJSON)
	l.RegisterCompanion("shell", companionShell)
	l.RegisterCompanion("process", companionProcess)
	l.RegisterCompanion("repl", companionRepl)
	l.RegisterCompanion("ui.term", companionUITerm)
}
