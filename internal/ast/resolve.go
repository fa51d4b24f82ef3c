package ast

// ResolveStatus is the tri-state marker from the data model: NotDone ->
// Running -> Done. It replaces stack introspection for detecting
// cyclic resolution (§9 "Cyclic resolution via tri-state").
type ResolveStatus int

const (
	NotDone ResolveStatus = iota
	Running
	Done
)

func (s ResolveStatus) String() string {
	switch s {
	case Running:
		return "Running"
	case Done:
		return "Done"
	default:
		return "NotDone"
	}
}
