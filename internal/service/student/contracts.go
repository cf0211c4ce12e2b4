package student

// changeCounter records committed relationship changes.
type changeCounter interface {
	Inc(operation string)
}

type nopCounter struct{}

func (nopCounter) Inc(string) {}
