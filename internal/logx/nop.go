package logx

// discard drops every entry. Services fall back to it when no logger is wired.
type discard struct{}

var nop Logger = discard{}

// Nop returns a Logger that drops everything.
func Nop() Logger { return nop }

func (discard) Debug(string, ...Field) {}
func (discard) Info(string, ...Field)  {}
func (discard) Warn(string, ...Field)  {}
func (discard) Error(string, ...Field) {}
func (d discard) With(...Field) Logger { return d }
func (discard) Sync() error            { return nil }
