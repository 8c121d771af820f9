package domain

// Task is a unit of work in the assembly graph: one compiler or linker
// invocation. InternedString is used for fields that repeat across tasks.
type Task struct {
	Name         InternedString
	Command      []string
	Inputs       []InternedString
	Outputs      []InternedString
	Dependencies []InternedString
	WorkingDir   InternedString
	Environment  map[string]string
}
