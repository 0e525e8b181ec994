package traverse

// Sink receives traversal events. Every event carries the fully-qualified
// path of the originating node, built from dotted member names and bracketed
// indices, so diagnostics can locate it. The member argument is the last path
// segment ("" for the traversal root).
type Sink interface {
	EnterObject(path, member, typeName string)
	ExitObject()
	EnterArray(path, member string)
	ExitArray()
	Value(path, member, typeName string, value interface{})
	Null(path, member, typeName string)
	Error(path, member, typeName, message string)
	DepthLimit(path, member string)
	Truncated(path string, limit int)
}
